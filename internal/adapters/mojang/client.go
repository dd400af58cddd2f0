// Package mojang implements the runtime registry client against the
// official version metadata API (or a mirror of it).
package mojang

import (
	"context"
	"crypto/sha1" //nolint:gosec // The registry publishes sha1 digests.
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

const versionManifestPath = "mc/game/version_manifest.json"

var _ ports.RuntimeRegistry = (*Client)(nil)

// Client implements ports.RuntimeRegistry.
type Client struct {
	fetcher ports.Fetcher
	mirror  domain.Mirror
}

// NewClient creates a runtime registry client using the given mirror.
func NewClient(fetcher ports.Fetcher, mirror domain.Mirror) *Client {
	return &Client{fetcher: fetcher, mirror: mirror}
}

// WithMirror returns a copy of the client scoped to another mirror.
func (c *Client) WithMirror(mirror domain.Mirror) *Client {
	return &Client{fetcher: c.fetcher, mirror: mirror}
}

// VersionDetail fetches the full description of one runtime version.
func (c *Client) VersionDetail(ctx context.Context, versionID string) (*domain.VersionDetail, error) {
	manifest, err := c.versionManifest(ctx)
	if err != nil {
		return nil, err
	}

	var detailURL string
	for _, v := range manifest.Versions {
		if v.ID == versionID {
			detailURL = domain.RewriteURL(v.URL, c.mirror.VersionManifest)
			break
		}
	}
	if detailURL == "" {
		return nil, zerr.With(domain.ErrVersionNotFound, "version", versionID)
	}

	var detail versionDetailJSON
	if err := c.fetchJSON(ctx, detailURL, &detail); err != nil {
		return nil, err
	}

	out := &domain.VersionDetail{
		ID:         detail.ID,
		ClientURL:  detail.Downloads.Client.URL,
		ClientSHA1: detail.Downloads.Client.SHA1,
		ClientSize: detail.Downloads.Client.Size,
		AssetIndex: domain.AssetIndexRef{
			ID:   detail.AssetIndex.ID,
			URL:  detail.AssetIndex.URL,
			SHA1: detail.AssetIndex.SHA1,
			Size: detail.AssetIndex.Size,
		},
	}
	for _, lib := range detail.Libraries {
		if lib.Downloads.Artifact == nil {
			continue
		}
		rules := make([]domain.LibraryRule, 0, len(lib.Rules))
		for _, r := range lib.Rules {
			rules = append(rules, domain.LibraryRule{Action: r.Action, OSName: r.OS.Name})
		}
		out.Libraries = append(out.Libraries, domain.RuntimeLibrary{
			Name:   lib.Name,
			Path:   lib.Downloads.Artifact.Path,
			SHA1:   lib.Downloads.Artifact.SHA1,
			Size:   lib.Downloads.Artifact.Size,
			URL:    lib.Downloads.Artifact.URL,
			Native: len(lib.Downloads.Classifiers) > 0 || len(lib.Natives) > 0,
			Rules:  rules,
		})
	}
	return out, nil
}

// AssetObjects fetches the asset index, verifies it against its published
// sha1, and returns its objects.
func (c *Client) AssetObjects(ctx context.Context, index domain.AssetIndexRef) (map[string]domain.AssetObject, error) {
	url := domain.RewriteURL(index.URL, c.mirror.VersionManifest)
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, classify(err)
	}
	defer body.Close() //nolint:errcheck // read-only close

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read asset index"), "url", url)
	}

	sum := sha1.Sum(data) //nolint:gosec // see import comment
	if !strings.EqualFold(hex.EncodeToString(sum[:]), index.SHA1) {
		err := zerr.With(domain.ErrIntegrity, "url", url)
		return nil, zerr.With(err, "expected", "sha1:"+index.SHA1)
	}

	var idx assetIndexJSON
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestParse, err), "url", url)
	}

	objects := make(map[string]domain.AssetObject, len(idx.Objects))
	for name, obj := range idx.Objects {
		// Object hashes become download URLs and install paths; a malformed
		// one is a broken index, not a broken download.
		if !validSHA1(obj.Hash) {
			err := zerr.With(zerr.Wrap(domain.ErrManifestParse, "malformed asset object hash"), "asset", name)
			return nil, zerr.With(err, "hash", obj.Hash)
		}
		objects[name] = domain.AssetObject{Hash: obj.Hash, Size: obj.Size}
	}
	return objects, nil
}

// validSHA1 reports whether s is a 40-character lowercase hex digest, the
// form the asset index publishes.
func validSHA1(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Versions lists published runtime version ids, newest first.
func (c *Client) Versions(ctx context.Context, kind domain.VersionKind) ([]string, error) {
	manifest, err := c.versionManifest(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, v := range manifest.Versions {
		switch kind {
		case domain.VersionRelease:
			if v.Type != "release" {
				continue
			}
		case domain.VersionSnapshot:
			if v.Type != "snapshot" {
				continue
			}
		case domain.VersionAll:
		}
		out = append(out, v.ID)
	}
	return out, nil
}

func (c *Client) versionManifest(ctx context.Context) (*versionManifestJSON, error) {
	var manifest versionManifestJSON
	if err := c.fetchJSON(ctx, c.mirror.VersionManifest+versionManifestPath, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (c *Client) fetchJSON(ctx context.Context, url string, out any) error {
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return classify(err)
	}
	defer body.Close() //nolint:errcheck // read-only close

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestParse, err), "url", url)
	}
	return nil
}

// classify maps transient fetch failures to ErrRegistryUnavailable so
// resolver callers see a registry-level error, not a transport detail.
func classify(err error) error {
	if errors.Is(err, domain.ErrTransientNetwork) {
		return errors.Join(domain.ErrRegistryUnavailable, err)
	}
	return err
}
