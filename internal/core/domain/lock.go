package domain

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// LockFormatVersion is the current lock file schema version.
const LockFormatVersion = 1

// Role records where a lock entry came from.
type Role string

const (
	// RoleRuntime is the runtime's main executable artifact or one of its libraries.
	RoleRuntime Role = "runtime"
	// RoleAsset is a runtime auxiliary asset object.
	RoleAsset Role = "asset"
	// RoleLoader is a mod-loader component.
	RoleLoader Role = "loader"
	// RoleMod is a directly declared mod file.
	RoleMod Role = "mod"
	// RoleModDependency is a mod pulled in transitively by a declared mod.
	RoleModDependency Role = "mod-dependency"
)

// HashRef is an algorithm-tagged content hash.
type HashRef struct {
	Algo string `yaml:"algo"`
	Hex  string `yaml:"hex"`
}

// Equal reports whether two hash refs name the same content.
func (h HashRef) Equal(other HashRef) bool {
	return h.Algo == other.Algo && strings.EqualFold(h.Hex, other.Hex)
}

// IsZero reports whether the hash ref is unset.
func (h HashRef) IsZero() bool { return h.Hex == "" }

// String renders the ref as "algo:hex".
func (h HashRef) String() string { return h.Algo + ":" + strings.ToLower(h.Hex) }

// LockEntry is one resolved artifact pinned by the lock.
type LockEntry struct {
	Name    string   `yaml:"name"`
	Role    Role     `yaml:"role"`
	Version string   `yaml:"version,omitempty"`
	URLs    []string `yaml:"urls"`
	Hash    HashRef  `yaml:"hash"`
	Size    int64    `yaml:"size"`
	Path    string   `yaml:"path"`

	// RequiredBy lists the mod names whose "requires" edges pulled this entry
	// in. Populated for mod-dependency entries so the flattened set stays
	// traceable.
	RequiredBy []string `yaml:"required_by,omitempty"`

	// OptionalDeps lists dependencies the registry marks optional. They are
	// recorded for inspection but never resolved or installed.
	OptionalDeps []string `yaml:"optional_deps,omitempty"`
}

// Key identifies an entry within a lock. Name alone is not unique because a
// loader may override a runtime library of the same logical name.
func (e LockEntry) Key() string { return string(e.Role) + "/" + e.Name }

// Lock is the machine-generated exact snapshot of artifacts satisfying a
// manifest. It is owned exclusively by the reconciler.
type Lock struct {
	Version     int         `yaml:"lock_version"`
	Fingerprint string      `yaml:"fingerprint"`
	Entries     []LockEntry `yaml:"entries"`
}

// NewLock creates an empty lock bound to the given manifest fingerprint.
func NewLock(fingerprint string) *Lock {
	return &Lock{Version: LockFormatVersion, Fingerprint: fingerprint}
}

// Sort orders entries by (role, name) so repeated resolution of the same
// manifest serializes byte-identically.
func (l *Lock) Sort() {
	sort.Slice(l.Entries, func(i, j int) bool {
		if l.Entries[i].Role != l.Entries[j].Role {
			return l.Entries[i].Role < l.Entries[j].Role
		}
		return l.Entries[i].Name < l.Entries[j].Name
	})
	for i := range l.Entries {
		sort.Strings(l.Entries[i].RequiredBy)
		sort.Strings(l.Entries[i].OptionalDeps)
	}
}

// Entry returns the entry with the given role and name.
func (l *Lock) Entry(role Role, name string) (LockEntry, bool) {
	for _, e := range l.Entries {
		if e.Role == role && e.Name == name {
			return e, true
		}
	}
	return LockEntry{}, false
}

// ModEntries returns entries with provenance mod or mod-dependency.
func (l *Lock) ModEntries() []LockEntry {
	var out []LockEntry
	for _, e := range l.Entries {
		if e.Role == RoleMod || e.Role == RoleModDependency {
			out = append(out, e)
		}
	}
	return out
}

// Validate enforces the lock invariants: entry keys are unique, every entry
// carries a hash and an install path confined to the instance directory, and
// every mod-dependency entry is traceable to at least one mod entry that
// required it.
func (l *Lock) Validate() error {
	if l.Version != LockFormatVersion {
		return zerr.With(ErrCorruptLock, "lock_version", l.Version)
	}
	mods := make(map[string]bool)
	deps := make(map[string]LockEntry)
	for _, e := range l.Entries {
		switch e.Role {
		case RoleMod:
			mods[strings.ToLower(e.Name)] = true
		case RoleModDependency:
			deps[strings.ToLower(e.Name)] = e
		}
	}
	keys := make(map[string]bool, len(l.Entries))
	for _, e := range l.Entries {
		if keys[e.Key()] {
			return zerr.With(zerr.Wrap(ErrCorruptLock, "duplicate lock entry"), "entry", e.Key())
		}
		keys[e.Key()] = true

		if e.Hash.IsZero() || e.Path == "" || len(e.URLs) == 0 {
			return zerr.With(zerr.Wrap(ErrCorruptLock, "incomplete lock entry"), "entry", e.Key())
		}

		// Install paths come from registry data; one that resolves outside
		// the instance directory must never reach the materializer.
		if !SafeInstallPath(e.Path) {
			err := zerr.With(zerr.Wrap(ErrCorruptLock, "unsafe install path"), "entry", e.Key())
			return zerr.With(err, "path", e.Path)
		}

		// RequiredBy edges may name other dependencies; the chain must
		// bottom out at a declared mod.
		if e.Role == RoleModDependency && !tracesToMod(e, mods, deps, map[string]bool{}) {
			return zerr.With(zerr.Wrap(ErrCorruptLock, "orphaned mod-dependency"), "entry", e.Name)
		}
	}
	return nil
}

// tracesToMod reports whether the entry's RequiredBy chain reaches a
// declared mod.
func tracesToMod(e LockEntry, mods map[string]bool, deps map[string]LockEntry, visiting map[string]bool) bool {
	key := strings.ToLower(e.Name)
	if visiting[key] {
		return false
	}
	visiting[key] = true
	for _, req := range e.RequiredBy {
		reqKey := strings.ToLower(req)
		if mods[reqKey] {
			return true
		}
		if parent, ok := deps[reqKey]; ok && tracesToMod(parent, mods, deps, visiting) {
			return true
		}
	}
	return false
}

// Artifacts converts the lock entries into transient download units.
func (l *Lock) Artifacts() []Artifact {
	out := make([]Artifact, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, Artifact{
			Name: e.Key(),
			URLs: e.URLs,
			Hash: e.Hash,
			Size: e.Size,
			Path: e.Path,
		})
	}
	return out
}
