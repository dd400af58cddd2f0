package ports

import "github.com/funny233-github/mcpack/internal/core/domain"

// InstanceStore persists the declared manifest and the committed lock of one
// instance directory. The lock writer is the reconciler; everything else
// reads.
//
//go:generate mockgen -source=instance.go -destination=mocks/mock_instance.go -package=mocks
type InstanceStore interface {
	// LoadManifest reads and validates the declared manifest.
	// Returns domain.ErrManifestNotFound when the file does not exist.
	LoadManifest(dir string) (*domain.Manifest, error)

	// SaveManifest writes the manifest atomically.
	SaveManifest(dir string, m *domain.Manifest) error

	// LoadLock reads and validates the committed lock.
	// Returns domain.ErrLockNotFound when no lock has been committed, and
	// domain.ErrCorruptLock when the file cannot be decoded.
	LoadLock(dir string) (*domain.Lock, error)

	// CommitLock atomically replaces the committed lock
	// (write-temp-then-rename; a crash mid-write never leaves a torn lock).
	CommitLock(dir string, l *domain.Lock) error
}
