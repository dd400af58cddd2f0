// Package app implements the application layer for mcpack: the operations
// the CLI exposes, orchestrated over the resolvers, the download engine, the
// materializer, and instance persistence.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/funny233-github/mcpack/internal/engine/download"
	"github.com/funny233-github/mcpack/internal/engine/materialize"
	"github.com/funny233-github/mcpack/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	dir        string
	mirror     domain.Mirror
	instance   ports.InstanceStore
	reconciler *reconcile.Reconciler
	material   *materialize.Materializer
	engine     *download.Engine
	runtime    ports.RuntimeRegistry
	mods       ports.ModRegistry
	logger     ports.Logger
}

// New creates a new App instance operating on the given instance directory.
func New(
	dir string,
	mirror domain.Mirror,
	instance ports.InstanceStore,
	reconciler *reconcile.Reconciler,
	material *materialize.Materializer,
	engine *download.Engine,
	runtime ports.RuntimeRegistry,
	mods ports.ModRegistry,
	logger ports.Logger,
) *App {
	return &App{
		dir:        dir,
		mirror:     mirror,
		instance:   instance,
		reconciler: reconciler,
		material:   material,
		engine:     engine,
		runtime:    runtime,
		mods:       mods,
		logger:     logger,
	}
}

// Add declares a mod in the manifest and brings the instance up to date.
// With configOnly, only the manifest and lock change; no files are touched.
func (a *App) Add(ctx context.Context, name, version string, configOnly bool) error {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return err
	}
	if _, ok := manifest.Requirement(name); ok {
		return zerr.With(domain.ErrModAlreadyDeclared, "mod", name)
	}

	manifest.Mods = append(manifest.Mods, domain.ModRequirement{Name: name, Version: version})
	if err := manifest.Validate(); err != nil {
		return err
	}
	if err := a.instance.SaveManifest(a.dir, manifest); err != nil {
		return err
	}
	return a.reconcileManifest(ctx, manifest, reconcile.ModePin, configOnly)
}

// Remove undeclares a mod. The manifest changes immediately; installed files
// go away on the next sync or clean.
func (a *App) Remove(_ context.Context, name string) error {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return err
	}
	if _, ok := manifest.Requirement(name); !ok {
		return zerr.With(domain.ErrModNotDeclared, "mod", name)
	}

	kept := manifest.Mods[:0]
	for _, mod := range manifest.Mods {
		if !strings.EqualFold(mod.Name, name) {
			kept = append(kept, mod)
		}
	}
	manifest.Mods = kept
	if err := a.instance.SaveManifest(a.dir, manifest); err != nil {
		return err
	}
	a.logger.Info("removed " + name + " from manifest; run sync or clean to remove its files")
	return nil
}

// Update re-resolves every unconstrained mod to its latest compatible
// version and brings the instance up to date.
func (a *App) Update(ctx context.Context, configOnly bool) error {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return err
	}
	return a.reconcileManifest(ctx, manifest, reconcile.ModeLatest, configOnly)
}

// Sync re-resolves the manifest, keeping previously locked versions for
// still-declared mods, and brings the instance up to date.
func (a *App) Sync(ctx context.Context, configOnly bool) error {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return err
	}
	return a.reconcileManifest(ctx, manifest, reconcile.ModePin, configOnly)
}

// Install materializes the instance strictly from the committed lock: no
// registry is consulted, and a lock that no longer matches the manifest
// fails as stale rather than being silently re-resolved.
func (a *App) Install(ctx context.Context) error {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return err
	}
	lock, err := a.instance.LoadLock(a.dir)
	if err != nil {
		return err
	}
	if lock.Fingerprint != manifest.Fingerprint() {
		stale := zerr.With(domain.ErrStaleLock, "lock_fingerprint", lock.Fingerprint)
		return zerr.With(stale, "manifest_fingerprint", manifest.Fingerprint())
	}

	stale := a.material.Verify(a.dir, lock)
	if len(stale) == 0 {
		a.logger.Info("instance already matches lock")
		return nil
	}

	artifacts := make([]domain.Artifact, 0, len(stale))
	for _, e := range stale {
		artifacts = append(artifacts, domain.Artifact{
			Name: e.Key(),
			URLs: e.URLs,
			Hash: e.Hash,
			Size: e.Size,
			Path: e.Path,
		})
	}
	if err := a.engine.Fetch(ctx, artifacts).Err(); err != nil {
		return err
	}
	return a.material.Apply(a.dir, domain.Diff{ToInstall: stale}).Err()
}

// Clean removes installed files no declared mod reaches anymore. A
// dependency stays installed while any declared mod still requires it, even
// transitively.
func (a *App) Clean(_ context.Context) error {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return err
	}
	lock, err := a.instance.LoadLock(a.dir)
	if errors.Is(err, domain.ErrLockNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pruned, removed := pruneUnreachable(manifest, lock)
	if len(removed) == 0 {
		return nil
	}
	if err := a.material.Apply(a.dir, domain.Diff{ToRemove: removed}).Err(); err != nil {
		return err
	}
	if satisfies(manifest, pruned) {
		pruned.Fingerprint = manifest.Fingerprint()
	}
	return a.instance.CommitLock(a.dir, pruned)
}

// Search returns ranked registry candidates for a free-text query.
func (a *App) Search(ctx context.Context, query string) ([]domain.ModSummary, error) {
	return a.mods.Search(ctx, query)
}

// Versions lists published runtime versions filtered by kind.
func (a *App) Versions(ctx context.Context, kind domain.VersionKind) ([]string, error) {
	return a.runtime.Versions(ctx, kind)
}

// DiffPreview resolves the manifest without committing anything and returns
// the changes a sync (ModePin) or update (ModeLatest) would apply.
func (a *App) DiffPreview(ctx context.Context, mode reconcile.Mode) (domain.Diff, error) {
	manifest, err := a.instance.LoadManifest(a.dir)
	if err != nil {
		return domain.Diff{}, err
	}
	prior, err := a.loadLockIfAny()
	if err != nil {
		return domain.Diff{}, err
	}
	next, err := a.reconciler.Resolve(ctx, manifest, a.mirror, mode, prior)
	if err != nil {
		return domain.Diff{}, err
	}
	return domain.ComputeDiff(prior, next), nil
}

func (a *App) reconcileManifest(ctx context.Context, manifest *domain.Manifest, mode reconcile.Mode, configOnly bool) error {
	prior, err := a.loadLockIfAny()
	if err != nil {
		return err
	}
	next, err := a.reconciler.Resolve(ctx, manifest, a.mirror, mode, prior)
	if err != nil {
		return err
	}
	if configOnly {
		return a.instance.CommitLock(a.dir, next)
	}
	return a.reconciler.Apply(ctx, a.dir, prior, next)
}

func (a *App) loadLockIfAny() (*domain.Lock, error) {
	lock, err := a.instance.LoadLock(a.dir)
	if errors.Is(err, domain.ErrLockNotFound) {
		return nil, nil
	}
	return lock, err
}

// pruneUnreachable splits the lock into entries reachable from the declared
// mods and entries that are not. Non-mod entries are always reachable.
func pruneUnreachable(m *domain.Manifest, lock *domain.Lock) (*domain.Lock, []domain.LockEntry) {
	reachable := make(map[string]bool)
	for _, mod := range m.Mods {
		reachable[strings.ToLower(mod.Name)] = true
	}

	// Dependencies are reachable through any chain of RequiredBy edges
	// rooted at a declared mod. Iterate to a fixpoint.
	for changed := true; changed; {
		changed = false
		for _, e := range lock.ModEntries() {
			key := strings.ToLower(e.Name)
			if reachable[key] {
				continue
			}
			for _, req := range e.RequiredBy {
				if reachable[strings.ToLower(req)] {
					reachable[key] = true
					changed = true
					break
				}
			}
		}
	}

	pruned := domain.NewLock(lock.Fingerprint)
	var removed []domain.LockEntry
	for _, e := range lock.Entries {
		isMod := e.Role == domain.RoleMod || e.Role == domain.RoleModDependency
		if isMod && !reachable[strings.ToLower(e.Name)] {
			removed = append(removed, e)
			continue
		}
		pruned.Entries = append(pruned.Entries, e)
	}
	return pruned, removed
}

// satisfies reports whether the lock pins every declared mod at a version
// the manifest accepts.
func satisfies(m *domain.Manifest, lock *domain.Lock) bool {
	for _, mod := range m.Mods {
		entry, ok := lock.Entry(domain.RoleMod, mod.Name)
		if !ok {
			return false
		}
		if mod.Version != "" && mod.Version != entry.Version {
			return false
		}
	}
	return true
}
