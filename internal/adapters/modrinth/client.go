// Package modrinth implements the mod registry client against the Modrinth
// v2 API.
package modrinth

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// BaseURL is the canonical Modrinth API endpoint.
const BaseURL = "https://api.modrinth.com/"

var _ ports.ModRegistry = (*Client)(nil)

// Client implements ports.ModRegistry.
type Client struct {
	fetcher ports.Fetcher
	base    string
}

// NewClient creates a mod registry client against BaseURL.
func NewClient(fetcher ports.Fetcher) *Client {
	return &Client{fetcher: fetcher, base: BaseURL}
}

// WithBase returns a copy of the client against another endpoint. Used by
// tests and by self-hosted registry deployments.
func (c *Client) WithBase(base string) *Client {
	return &Client{fetcher: c.fetcher, base: base}
}

// ProjectVersions lists every published version of a project, newest first,
// including its dependency edges. Dependency project ids are resolved to
// slugs so they line up with the names used in manifests.
func (c *Client) ProjectVersions(ctx context.Context, slug string) ([]domain.ModVersion, error) {
	var versions []versionJSON
	if err := c.fetchJSON(ctx, c.base+"v2/project/"+url.PathEscape(slug)+"/version", &versions); err != nil {
		if errors.Is(err, domain.ErrRegistryUnavailable) || errors.Is(err, domain.ErrManifestParse) {
			return nil, err
		}
		return nil, zerr.With(domain.ErrModNotFound, "mod", slug)
	}

	slugs, err := c.resolveSlugs(ctx, versions)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ModVersion, 0, len(versions))
	for _, v := range versions {
		mv := domain.ModVersion{
			Name:          slug,
			ID:            v.ID,
			VersionNumber: v.VersionNumber,
			GameVersions:  v.GameVersions,
			Loaders:       v.Loaders,
		}
		mv.Published, _ = time.Parse(time.RFC3339, v.DatePublished)
		for _, f := range v.Files {
			mv.Files = append(mv.Files, domain.ModFile{
				Filename: f.Filename,
				URL:      f.URL,
				SHA1:     f.Hashes.SHA1,
				SHA512:   f.Hashes.SHA512,
				Size:     f.Size,
				Primary:  f.Primary,
			})
		}
		for _, d := range v.Dependencies {
			if d.ProjectID == "" {
				continue
			}
			mv.Dependencies = append(mv.Dependencies, domain.ModDependency{
				Name:    slugs[d.ProjectID],
				Version: d.VersionID,
				Kind:    dependencyKind(d.DependencyType),
			})
		}
		out = append(out, mv)
	}
	return out, nil
}

// Search returns ranked candidate projects for a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.ModSummary, error) {
	var resp searchResponseJSON
	if err := c.fetchJSON(ctx, c.base+"v2/search?query="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}

	out := make([]domain.ModSummary, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		out = append(out, domain.ModSummary{
			Slug:        hit.Slug,
			Title:       hit.Title,
			Description: hit.Description,
			Downloads:   hit.Downloads,
		})
	}
	return out, nil
}

// resolveSlugs maps every dependency project id referenced by the versions
// to its slug, one lookup per distinct id.
func (c *Client) resolveSlugs(ctx context.Context, versions []versionJSON) (map[string]string, error) {
	slugs := map[string]string{}
	for _, v := range versions {
		for _, d := range v.Dependencies {
			if d.ProjectID == "" {
				continue
			}
			if _, ok := slugs[d.ProjectID]; ok {
				continue
			}
			var proj projectJSON
			if err := c.fetchJSON(ctx, c.base+"v2/project/"+url.PathEscape(d.ProjectID), &proj); err != nil {
				return nil, err
			}
			slugs[d.ProjectID] = proj.Slug
		}
	}
	return slugs, nil
}

func (c *Client) fetchJSON(ctx context.Context, url string, out any) error {
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, domain.ErrTransientNetwork) {
			return errors.Join(domain.ErrRegistryUnavailable, err)
		}
		return err
	}
	defer body.Close() //nolint:errcheck // read-only close

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestParse, err), "url", url)
	}
	return nil
}

func dependencyKind(wire string) domain.DependencyKind {
	switch wire {
	case "optional":
		return domain.DependencyOptional
	case "incompatible":
		return domain.DependencyIncompatible
	default:
		return domain.DependencyRequired
	}
}
