// Package lockfile persists the declared manifest and the committed lock of
// an instance as human-diffable YAML.
package lockfile

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.InstanceStore = (*Store)(nil)

// Store implements ports.InstanceStore on an instance directory.
type Store struct{}

// NewStore creates a new instance store.
func NewStore() *Store {
	return &Store{}
}

// LoadManifest reads and validates the declared manifest. Unknown keys are
// rejected rather than ignored: a misspelled field should fail loudly, not
// silently resolve to defaults.
func (s *Store) LoadManifest(dir string) (*domain.Manifest, error) {
	path := filepath.Join(dir, domain.ManifestFileName)
	data, err := os.ReadFile(path) //nolint:gosec // Instance directory is caller-controlled.
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var m domain.Manifest
	if err := decodeStrict(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveManifest writes the manifest atomically.
func (s *Store) SaveManifest(dir string, m *domain.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, domain.ManifestFileName), m)
}

// LoadLock reads and validates the committed lock.
func (s *Store) LoadLock(dir string) (*domain.Lock, error) {
	path := filepath.Join(dir, domain.LockFileName)
	data, err := os.ReadFile(path) //nolint:gosec // Instance directory is caller-controlled.
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrLockNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lock"), "path", path)
	}

	var l domain.Lock
	if err := decodeStrict(data, &l); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCorruptLock, err), "path", path)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// CommitLock atomically replaces the committed lock. Entries are sorted
// before serialization so re-resolving an unchanged manifest commits
// byte-identical content.
func (s *Store) CommitLock(dir string, l *domain.Lock) error {
	l.Sort()
	if err := l.Validate(); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, domain.LockFileName), l)
}

// decodeStrict decodes YAML rejecting unknown keys.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeAtomic(path string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return zerr.Wrap(err, "failed to encode document")
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create instance directory"), "path", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write temp file"), "path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to replace file"), "path", path)
	}
	return nil
}
