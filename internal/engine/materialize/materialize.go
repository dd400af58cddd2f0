// Package materialize projects lock diffs onto the instance directory:
// installing blobs from the content store and removing files the lock no
// longer covers.
package materialize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/funny233-github/mcpack/internal/adapters/cas"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Materializer applies diffs to an instance directory.
type Materializer struct {
	store  ports.ContentStore
	logger ports.Logger
}

// New creates a materializer placing blobs from the given store.
func New(store ports.ContentStore, logger ports.Logger) *Materializer {
	return &Materializer{store: store, logger: logger}
}

// Report lists what one Apply pass accomplished. Unapplied entries carry the
// errors that stopped them so the caller can retry materialization without
// re-resolving.
type Report struct {
	Installed int
	Removed   int
	Unapplied []Unapplied
}

// Unapplied is one diff entry the pass could not apply.
type Unapplied struct {
	Entry domain.LockEntry
	Err   error
}

// Err folds the report's failures into a single error, or nil when the diff
// applied completely.
func (r Report) Err() error {
	if len(r.Unapplied) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Unapplied))
	for _, u := range r.Unapplied {
		errs = append(errs, zerr.With(u.Err, "entry", u.Entry.Key()))
	}
	return errors.Join(domain.ErrMaterializeIncomplete, errors.Join(errs...))
}

// Apply projects the diff onto dir. Removals are guarded: a file whose
// on-disk hash no longer matches the outgoing lock entry is left in place
// and reported as ErrUnexpectedLocalModification, never deleted.
func (m *Materializer) Apply(dir string, diff domain.Diff) Report {
	var report Report

	for _, e := range diff.ToRemove {
		if err := m.remove(dir, e); err != nil {
			report.Unapplied = append(report.Unapplied, Unapplied{Entry: e, Err: err})
			continue
		}
		report.Removed++
	}
	for _, u := range diff.ToUpdate {
		if err := m.remove(dir, u.Old); err != nil {
			report.Unapplied = append(report.Unapplied, Unapplied{Entry: u.Old, Err: err})
			continue
		}
		if err := m.install(dir, u.New); err != nil {
			report.Unapplied = append(report.Unapplied, Unapplied{Entry: u.New, Err: err})
			continue
		}
		report.Installed++
	}
	for _, e := range diff.ToInstall {
		if err := m.install(dir, e); err != nil {
			report.Unapplied = append(report.Unapplied, Unapplied{Entry: e, Err: err})
			continue
		}
		report.Installed++
	}

	return report
}

// Verify reports the lock entries whose installed files are missing or
// modified. Used by install to repair an instance from the store without
// touching the network.
func (m *Materializer) Verify(dir string, l *domain.Lock) []domain.LockEntry {
	var stale []domain.LockEntry
	for _, e := range l.Entries {
		actual, err := cas.HashFile(m.installPath(dir, e), e.Hash)
		if err != nil || !actual.Equal(e.Hash) {
			stale = append(stale, e)
		}
	}
	return stale
}

func (m *Materializer) install(dir string, e domain.LockEntry) error {
	dest := m.installPath(dir, e)
	actual, err := cas.HashFile(dest, e.Hash)
	if err == nil && actual.Equal(e.Hash) {
		return nil
	}
	if err := m.store.Place(e.Hash, dest); err != nil {
		return err
	}
	m.logger.Info(fmt.Sprintf("installed %s", e.Path))
	return nil
}

func (m *Materializer) remove(dir string, e domain.LockEntry) error {
	dest := m.installPath(dir, e)
	actual, err := cas.HashFile(dest, e.Hash)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Join(domain.ErrFilesystem, err)
	}
	if !actual.Equal(e.Hash) {
		modified := zerr.With(domain.ErrUnexpectedLocalModification, "path", e.Path)
		modified = zerr.With(modified, "expected", e.Hash.String())
		return zerr.With(modified, "actual", actual.String())
	}
	if err := os.Remove(dest); err != nil {
		return errors.Join(domain.ErrFilesystem, err)
	}
	m.logger.Info(fmt.Sprintf("removed %s", e.Path))
	return nil
}

func (m *Materializer) installPath(dir string, e domain.LockEntry) string {
	return filepath.Join(dir, filepath.FromSlash(e.Path))
}
