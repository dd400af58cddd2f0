// Package resolve turns a declared manifest into pinned lock entries: the
// runtime side (client, libraries, assets, loader) and the mod side
// (declared mods plus their transitive closure).
package resolve

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
)

// canonicalAssetBase is where the official registry serves asset objects.
const canonicalAssetBase = "https://resources.download.minecraft.net/"

// VersionResolver pins the runtime half of a manifest: the client artifact,
// its libraries, the asset index and objects, and the loader profile.
type VersionResolver struct {
	runtime ports.RuntimeRegistry
	loader  ports.LoaderRegistry
	osName  string
}

// NewVersionResolver creates a resolver evaluating library rules against the
// current OS.
func NewVersionResolver(rt ports.RuntimeRegistry, loader ports.LoaderRegistry) *VersionResolver {
	return &VersionResolver{runtime: rt, loader: loader, osName: currentOSName()}
}

// WithOS returns a copy of the resolver evaluating rules for another OS
// name. Used by tests.
func (r *VersionResolver) WithOS(osName string) *VersionResolver {
	out := *r
	out.osName = osName
	return &out
}

// Resolve pins every runtime-side artifact the manifest implies. The
// returned entries are unsorted; the reconciler sorts the assembled lock.
func (r *VersionResolver) Resolve(ctx context.Context, m *domain.Manifest, mirror domain.Mirror) ([]domain.LockEntry, error) {
	detail, err := r.runtime.VersionDetail(ctx, m.RuntimeVersion)
	if err != nil {
		return nil, err
	}

	var entries []domain.LockEntry
	entries = append(entries, domain.LockEntry{
		Name:    "client",
		Role:    domain.RoleRuntime,
		Version: m.RuntimeVersion,
		URLs:    domain.SourceList(detail.ClientURL, mirror.Client),
		Hash:    domain.HashRef{Algo: "sha1", Hex: detail.ClientSHA1},
		Size:    detail.ClientSize,
		Path:    domain.ClientPath(m.RuntimeVersion),
	})

	libraries := make(map[string]domain.LockEntry)
	order := make([]string, 0, len(detail.Libraries))
	for _, lib := range detail.Libraries {
		if lib.Native || !r.rulesAllow(lib.Rules) {
			continue
		}
		logical := logicalName(lib.Name)
		if _, ok := libraries[logical]; !ok {
			order = append(order, logical)
		}
		libraries[logical] = libraryEntry(lib, domain.RoleRuntime, mirror.Libraries)
	}

	if m.LoaderKind == domain.LoaderFabric {
		loaderEntries, overrides, err := r.resolveLoader(ctx, m, mirror)
		if err != nil {
			return nil, err
		}
		// A loader library supersedes a runtime library of the same logical
		// name; keeping both would put two versions on the classpath.
		for logical := range overrides {
			delete(libraries, logical)
		}
		entries = append(entries, loaderEntries...)
	}
	for _, logical := range order {
		if e, ok := libraries[logical]; ok {
			entries = append(entries, e)
		}
	}

	assetEntries, err := r.resolveAssets(ctx, detail.AssetIndex, mirror)
	if err != nil {
		return nil, err
	}
	entries = append(entries, assetEntries...)

	return entries, nil
}

// resolveLoader pins the loader profile's libraries and reports the logical
// names it overrides.
func (r *VersionResolver) resolveLoader(ctx context.Context, m *domain.Manifest, mirror domain.Mirror) ([]domain.LockEntry, map[string]bool, error) {
	loaderVersion := m.LoaderVersion
	if loaderVersion == "" {
		versions, err := r.loader.LoaderVersions(ctx, m.RuntimeVersion)
		if err != nil {
			return nil, nil, err
		}
		loaderVersion = versions[0]
	}

	profile, err := r.loader.Profile(ctx, m.RuntimeVersion, loaderVersion)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.LockEntry, 0, len(profile.Libraries))
	overrides := make(map[string]bool, len(profile.Libraries))
	for _, lib := range profile.Libraries {
		e := libraryEntry(lib, domain.RoleLoader, mirror.Libraries)
		e.Version = loaderVersion
		entries = append(entries, e)
		overrides[logicalName(lib.Name)] = true
	}
	return entries, overrides, nil
}

// resolveAssets pins the asset index document plus one entry per object.
func (r *VersionResolver) resolveAssets(ctx context.Context, index domain.AssetIndexRef, mirror domain.Mirror) ([]domain.LockEntry, error) {
	objects, err := r.runtime.AssetObjects(ctx, index)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LockEntry, 0, len(objects)+1)
	entries = append(entries, domain.LockEntry{
		Name: "index/" + index.ID,
		Role: domain.RoleAsset,
		URLs: domain.SourceList(index.URL, mirror.VersionManifest),
		Hash: domain.HashRef{Algo: "sha1", Hex: index.SHA1},
		Size: index.Size,
		Path: domain.AssetIndexPath(index.ID),
	})
	for name, obj := range objects {
		canonical := fmt.Sprintf("%s%s/%s", canonicalAssetBase, obj.Hash[:2], obj.Hash)
		entries = append(entries, domain.LockEntry{
			Name: name,
			Role: domain.RoleAsset,
			URLs: domain.SourceList(canonical, mirror.Assets),
			Hash: domain.HashRef{Algo: "sha1", Hex: obj.Hash},
			Size: obj.Size,
			Path: domain.AssetPath(obj.Hash),
		})
	}
	return entries, nil
}

// rulesAllow evaluates a library's platform rules against the resolver's OS.
// No rules means allowed; otherwise the last matching rule decides, starting
// from disallowed.
func (r *VersionResolver) rulesAllow(rules []domain.LibraryRule) bool {
	if len(rules) == 0 {
		return true
	}
	allowed := false
	for _, rule := range rules {
		if rule.OSName != "" && rule.OSName != r.osName {
			continue
		}
		allowed = rule.Action == "allow"
	}
	return allowed
}

func libraryEntry(lib domain.RuntimeLibrary, role domain.Role, mirrorBase string) domain.LockEntry {
	return domain.LockEntry{
		Name: lib.Name,
		Role: role,
		URLs: domain.SourceList(lib.URL, mirrorBase),
		Hash: domain.HashRef{Algo: "sha1", Hex: lib.SHA1},
		Size: lib.Size,
		Path: domain.LibraryPath(lib.Path),
	}
}

// logicalName strips the version from a maven coordinate, leaving
// "group:artifact".
func logicalName(coordinate string) string {
	parts := strings.SplitN(coordinate, ":", 3)
	if len(parts) < 2 {
		return coordinate
	}
	return parts[0] + ":" + parts[1]
}

// currentOSName maps GOOS to the registry's rule vocabulary.
func currentOSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	default:
		return runtime.GOOS
	}
}
