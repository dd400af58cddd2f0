// Package reconcile drives one resolution-and-installation pass: manifest in,
// committed lock and materialized instance out. A pass either commits
// completely or leaves the previous lock and files untouched.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/funny233-github/mcpack/internal/engine/download"
	"github.com/funny233-github/mcpack/internal/engine/materialize"
	"github.com/funny233-github/mcpack/internal/engine/resolve"
)

// Mode selects how unconstrained mods are pinned during resolution.
type Mode string

const (
	// ModePin keeps the previously locked version of every still-declared
	// mod without an exact constraint.
	ModePin Mode = "pin"
	// ModeLatest floats every unconstrained mod to its latest compatible
	// version.
	ModeLatest Mode = "latest"
)

// State is the reconciler's position within a pass.
type State string

const (
	StateUnresolved State = "unresolved"
	StateResolving  State = "resolving"
	StateResolved   State = "resolved"
	StateCommitted  State = "committed"
	StateFailed     State = "failed"
)

// Reconciler assembles locks from resolver output and applies them to the
// instance.
type Reconciler struct {
	versions *resolve.VersionResolver
	mods     *resolve.ModResolver
	engine   *download.Engine
	material *materialize.Materializer
	instance ports.InstanceStore
	logger   ports.Logger

	state State
}

// New creates a reconciler.
func New(
	versions *resolve.VersionResolver,
	mods *resolve.ModResolver,
	engine *download.Engine,
	material *materialize.Materializer,
	instance ports.InstanceStore,
	logger ports.Logger,
) *Reconciler {
	return &Reconciler{
		versions: versions,
		mods:     mods,
		engine:   engine,
		material: material,
		instance: instance,
		logger:   logger,
		state:    StateUnresolved,
	}
}

// State reports the reconciler's position within the current pass.
func (r *Reconciler) State() State { return r.state }

// Resolve computes a complete lock for the manifest. prior is the currently
// committed lock, or nil; ModePin reuses its versions for still-declared,
// unconstrained mods.
func (r *Reconciler) Resolve(ctx context.Context, m *domain.Manifest, mirror domain.Mirror, mode Mode, prior *domain.Lock) (*domain.Lock, error) {
	r.state = StateResolving

	lock, err := r.resolve(ctx, m, mirror, mode, prior)
	if err != nil {
		r.state = StateFailed
		return nil, err
	}
	r.state = StateResolved
	return lock, nil
}

func (r *Reconciler) resolve(ctx context.Context, m *domain.Manifest, mirror domain.Mirror, mode Mode, prior *domain.Lock) (*domain.Lock, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	runtimeEntries, err := r.versions.Resolve(ctx, m, mirror)
	if err != nil {
		return nil, err
	}

	var pinned map[string]string
	if mode == ModePin && prior != nil {
		pinned = pinnedVersions(m, prior)
	}
	modEntries, err := r.mods.Resolve(ctx, m, pinned)
	if err != nil {
		return nil, err
	}

	lock := domain.NewLock(m.Fingerprint())
	lock.Entries = append(lock.Entries, runtimeEntries...)
	lock.Entries = append(lock.Entries, modEntries...)
	lock.Sort()
	if err := lock.Validate(); err != nil {
		return nil, err
	}
	return lock, nil
}

// Apply brings dir from the old lock to the new one: every artifact of the
// diff is fetched into the store before any file is touched, then the diff
// is materialized and the new lock committed. Any failure leaves the old
// lock and files in place.
func (r *Reconciler) Apply(ctx context.Context, dir string, old, next *domain.Lock) error {
	diff := domain.ComputeDiff(old, next)

	if !diff.Empty() {
		report := r.engine.Fetch(ctx, incomingArtifacts(diff))
		if err := report.Err(); err != nil {
			r.state = StateFailed
			return err
		}
		r.logger.Info(fmt.Sprintf("fetched %d artifacts (%d cached)", report.Fetched, report.Cached))

		if err := r.material.Apply(dir, diff).Err(); err != nil {
			r.state = StateFailed
			return err
		}
	}

	if err := r.instance.CommitLock(dir, next); err != nil {
		r.state = StateFailed
		return err
	}
	r.state = StateCommitted
	return nil
}

// pinnedVersions maps still-declared, unconstrained mod names to the version
// the prior lock chose for them.
func pinnedVersions(m *domain.Manifest, prior *domain.Lock) map[string]string {
	pinned := make(map[string]string)
	for _, e := range prior.Entries {
		if e.Role != domain.RoleMod {
			continue
		}
		req, declared := m.Requirement(e.Name)
		if declared && req.Version == "" {
			pinned[keyName(e.Name)] = e.Version
		}
	}
	return pinned
}

// keyName matches the mod resolver's case-insensitive keying.
func keyName(name string) string { return strings.ToLower(name) }

// incomingArtifacts lists the download units the diff introduces.
func incomingArtifacts(diff domain.Diff) []domain.Artifact {
	entries := make([]domain.LockEntry, 0, len(diff.ToInstall)+len(diff.ToUpdate))
	entries = append(entries, diff.ToInstall...)
	for _, u := range diff.ToUpdate {
		entries = append(entries, u.New)
	}

	out := make([]domain.Artifact, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Artifact{
			Name: e.Key(),
			URLs: e.URLs,
			Hash: e.Hash,
			Size: e.Size,
			Path: e.Path,
		})
	}
	return out
}
