// Package fabric implements the loader registry client against the Fabric
// meta API (or a mirror of it).
package fabric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LoaderRegistry = (*Client)(nil)

// Client implements ports.LoaderRegistry.
type Client struct {
	fetcher ports.Fetcher
	mirror  domain.Mirror
}

// NewClient creates a loader registry client using the given mirror.
func NewClient(fetcher ports.Fetcher, mirror domain.Mirror) *Client {
	return &Client{fetcher: fetcher, mirror: mirror}
}

// WithMirror returns a copy of the client scoped to another mirror.
func (c *Client) WithMirror(mirror domain.Mirror) *Client {
	return &Client{fetcher: c.fetcher, mirror: mirror}
}

// Profile fetches the loader's artifact list for one runtime version. The
// meta API answers 400/404 for unsupported pairs, which surfaces here as
// ErrLoaderIncompatible.
func (c *Client) Profile(ctx context.Context, runtimeVersion, loaderVersion string) (*domain.LoaderProfile, error) {
	url := fmt.Sprintf("%sv2/versions/loader/%s/%s/profile/json",
		c.mirror.FabricMeta, escape(runtimeVersion), escape(loaderVersion))

	var profile profileJSON
	if err := c.fetchJSON(ctx, url, &profile); err != nil {
		if errors.Is(err, domain.ErrRegistryUnavailable) || errors.Is(err, domain.ErrManifestParse) {
			return nil, err
		}
		incompatible := zerr.With(domain.ErrLoaderIncompatible, "runtime", runtimeVersion)
		return nil, zerr.With(incompatible, "loader", loaderVersion)
	}

	out := &domain.LoaderProfile{
		LoaderVersion: loaderVersion,
		MainClass:     profile.MainClass,
	}
	for _, lib := range profile.Libraries {
		out.Libraries = append(out.Libraries, domain.RuntimeLibrary{
			Name: lib.Name,
			Path: mavenPath(lib.Name),
			SHA1: lib.SHA1,
			Size: lib.Size,
			URL:  strings.TrimSuffix(lib.URL, "/") + "/" + mavenPath(lib.Name),
		})
	}
	return out, nil
}

// LoaderVersions lists loader versions compatible with the runtime version,
// newest first (the meta API's own ordering).
func (c *Client) LoaderVersions(ctx context.Context, runtimeVersion string) ([]string, error) {
	url := c.mirror.FabricMeta + "v2/versions/loader/" + escape(runtimeVersion)

	var entries []loaderForGameJSON
	if err := c.fetchJSON(ctx, url, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, zerr.With(domain.ErrLoaderIncompatible, "runtime", runtimeVersion)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Loader.Version)
	}
	return out, nil
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

// escape percent-encodes spaces in version ids ("1.14 Pre-Release 5").
func escape(version string) string {
	return strings.ReplaceAll(version, " ", "%20")
}

// mavenPath converts a maven coordinate "group:artifact:version" to its
// repository-relative jar path.
func mavenPath(name string) string {
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return name
	}
	group := strings.ReplaceAll(parts[0], ".", "/")
	artifact := parts[1]
	version := parts[2]
	return fmt.Sprintf("%s/%s/%s/%s-%s.jar", group, artifact, version, artifact, version)
}
