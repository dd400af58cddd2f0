// Package domain contains the pure types of the resolution-and-installation
// engine: the declared manifest, the lock, resolved artifacts, and the error
// catalog. Nothing in this package performs I/O.
package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// LoaderKind identifies a mod-loader flavor.
type LoaderKind string

const (
	// LoaderNone means the instance runs the vanilla runtime without a loader.
	LoaderNone LoaderKind = ""
	// LoaderFabric is the Fabric mod loader.
	LoaderFabric LoaderKind = "fabric"
)

// ModRequirement is one declared mod: a registry slug plus an optional exact
// version. An empty Version means "latest compatible with the active runtime
// and loader".
type ModRequirement struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// Manifest is the user-authored statement of desired state for one instance.
// It is owned by the config layer; the engine only reads it.
type Manifest struct {
	RuntimeVersion string           `yaml:"runtime"`
	LoaderKind     LoaderKind       `yaml:"loader,omitempty"`
	LoaderVersion  string           `yaml:"loader_version,omitempty"`
	Mirror         string           `yaml:"mirror,omitempty"`
	Mods           []ModRequirement `yaml:"mods,omitempty"`
}

// Validate rejects manifests that cannot be resolved. Duplicate mod names are
// an error rather than last-write-wins so a typo never silently drops a
// declaration.
func (m *Manifest) Validate() error {
	if m.RuntimeVersion == "" {
		return zerr.New("manifest missing runtime version")
	}
	if m.LoaderKind != LoaderNone && m.LoaderKind != LoaderFabric {
		return zerr.With(zerr.New("unsupported loader kind"), "loader", string(m.LoaderKind))
	}
	seen := make(map[string]bool, len(m.Mods))
	for _, mod := range m.Mods {
		if mod.Name == "" {
			return zerr.New("manifest contains mod entry without a name")
		}
		key := strings.ToLower(mod.Name)
		if seen[key] {
			return zerr.With(ErrDuplicateModDeclared, "mod", mod.Name)
		}
		seen[key] = true
	}
	return nil
}

// Requirement returns the declared requirement for the named mod.
func (m *Manifest) Requirement(name string) (ModRequirement, bool) {
	for _, mod := range m.Mods {
		if strings.EqualFold(mod.Name, name) {
			return mod, true
		}
	}
	return ModRequirement{}, false
}

// Fingerprint computes a stable hash of the manifest's normalized contents.
// A committed lock is only valid while its fingerprint matches. Mods are
// sorted by name before hashing so declaration order does not invalidate an
// otherwise identical lock.
func (m *Manifest) Fingerprint() string {
	h := xxhash.New()

	_, _ = h.WriteString(m.RuntimeVersion)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(string(m.LoaderKind))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(m.LoaderVersion)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(m.Mirror)
	_, _ = h.Write([]byte{0})

	mods := make([]ModRequirement, len(m.Mods))
	copy(mods, m.Mods)
	sort.Slice(mods, func(i, j int) bool {
		return strings.ToLower(mods[i].Name) < strings.ToLower(mods[j].Name)
	})
	for _, mod := range mods {
		_, _ = h.WriteString(strings.ToLower(mod.Name))
		_, _ = h.Write([]byte{'='})
		_, _ = h.WriteString(mod.Version)
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
