// Package ports defines the interfaces between the engine and its
// collaborators: registries, the fetcher, the content store, and instance
// persistence.
package ports

import (
	"context"

	"github.com/funny233-github/mcpack/internal/core/domain"
)

// RuntimeRegistry is the client-observable contract of the runtime version
// registry.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RuntimeRegistry interface {
	// VersionDetail fetches the full description of one runtime version.
	// Returns domain.ErrVersionNotFound for unknown version ids.
	VersionDetail(ctx context.Context, versionID string) (*domain.VersionDetail, error)

	// AssetObjects fetches and verifies the asset index, returning its
	// objects keyed by logical asset name.
	AssetObjects(ctx context.Context, index domain.AssetIndexRef) (map[string]domain.AssetObject, error)

	// Versions lists published runtime version ids, newest first.
	Versions(ctx context.Context, kind domain.VersionKind) ([]string, error)
}

// LoaderRegistry is the client-observable contract of the mod-loader
// registry.
type LoaderRegistry interface {
	// Profile fetches the loader's artifact list for one runtime version.
	// Returns domain.ErrLoaderIncompatible when the pair is not supported.
	Profile(ctx context.Context, runtimeVersion, loaderVersion string) (*domain.LoaderProfile, error)

	// LoaderVersions lists loader versions compatible with the runtime
	// version, newest first.
	LoaderVersions(ctx context.Context, runtimeVersion string) ([]string, error)
}

// ModRegistry is the client-observable contract of the mod registry.
type ModRegistry interface {
	// ProjectVersions lists every published version of a project, including
	// its dependency edges. Returns domain.ErrModNotFound for unknown slugs.
	ProjectVersions(ctx context.Context, slug string) ([]domain.ModVersion, error)

	// Search returns ranked candidate projects for a free-text query.
	Search(ctx context.Context, query string) ([]domain.ModSummary, error)
}
