package ports

import (
	"context"
	"io"

	"github.com/funny233-github/mcpack/internal/core/domain"
)

// ContentStore is the content-addressed, hash-verified cache of downloaded
// artifact bytes. Blobs are immutable once placed; nothing mutates them
// in-place.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ContentStore interface {
	// Has reports whether a verified blob for the hash is present.
	Has(hash domain.HashRef) bool

	// Put streams r into the store, verifying it against the expected hash.
	// The bytes are written to a unique temporary name and atomically
	// renamed only after verification; on mismatch the temp file is
	// discarded and domain.ErrIntegrity returned. Concurrent writers of the
	// same hash race benignly: the first to finish wins.
	Put(ctx context.Context, r io.Reader, expect domain.HashRef) error

	// Open opens a verified blob for reading. Returns domain.ErrCacheMiss
	// when absent.
	Open(hash domain.HashRef) (io.ReadCloser, error)

	// Place copies or links the blob to an absolute destination path,
	// creating intermediate directories. Returns domain.ErrCacheMiss when
	// the blob is absent.
	Place(hash domain.HashRef, dest string) error
}
