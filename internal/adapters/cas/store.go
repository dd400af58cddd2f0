// Package cas implements the content-addressed store of downloaded artifact
// bytes. Blobs live under <root>/<algo>/<2-hex-prefix>/<hex> and are
// immutable once placed.
package cas

import (
	"context"
	"crypto/sha1" //nolint:gosec // Registries publish sha1 digests; this is integrity, not cryptography.
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentStore = (*Store)(nil)

// Store implements ports.ContentStore on a local directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory, creating it if
// needed.
func NewStore(root string) (*Store, error) {
	cleanRoot := filepath.Clean(root)
	if err := os.MkdirAll(cleanRoot, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create store directory"), "path", cleanRoot)
	}
	return &Store{root: cleanRoot}, nil
}

// Has reports whether a verified blob for the hash is present.
func (s *Store) Has(h domain.HashRef) bool {
	_, err := os.Stat(s.blobPath(h))
	return err == nil
}

// Put streams r into the store under the expected hash. The bytes go to a
// unique temp file first; the digest is computed during the copy and the
// file renamed into place only when it matches. The first writer of a hash
// wins; later writers land on the same name.
func (s *Store) Put(ctx context.Context, r io.Reader, expect domain.HashRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	digest, err := newDigest(expect.Algo)
	if err != nil {
		return err
	}

	dest := s.blobPath(expect)
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create blob directory"), "hash", expect.String())
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "blob-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp blob")
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(io.MultiWriter(tmp, digest), r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to write blob"), "hash", expect.String())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to close temp blob")
	}

	got := hex.EncodeToString(digest.Sum(nil))
	if !strings.EqualFold(got, expect.Hex) {
		_ = os.Remove(tmpName)
		err := zerr.With(domain.ErrIntegrity, "expected", expect.String())
		return zerr.With(err, "actual", expect.Algo+":"+got)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to place blob"), "hash", expect.String())
	}
	return nil
}

// Open opens a verified blob for reading.
func (s *Store) Open(h domain.HashRef) (io.ReadCloser, error) {
	f, err := os.Open(s.blobPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrCacheMiss, "hash", h.String())
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open blob"), "hash", h.String())
	}
	return f, nil
}

// Place copies or hard-links the blob to dest, creating intermediate
// directories. A hard link is attempted first since blobs are immutable; on
// cross-device or unsupported filesystems it falls back to a copy through a
// temp file.
func (s *Store) Place(h domain.HashRef, dest string) error {
	src := s.blobPath(h)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrCacheMiss, "hash", h.String())
		}
		return zerr.With(zerr.Wrap(err, "failed to stat blob"), "hash", h.String())
	}

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination directory"), "path", dest)
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to replace destination"), "path", dest)
	}

	if err := os.Link(src, dest); err == nil {
		return nil
	}
	return copyFile(src, dest)
}

// blobPath tolerates hex too short to fan out; such a ref can only come
// from a corrupt lock and resolves to a miss rather than a panic.
func (s *Store) blobPath(h domain.HashRef) string {
	hexHash := strings.ToLower(h.Hex)
	fan := hexHash
	if len(fan) > 2 {
		fan = fan[:2]
	}
	return filepath.Join(s.root, h.Algo, fan, hexHash)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open blob"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only close

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp destination")
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to copy blob"), "path", dest)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to close temp destination")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to chmod temp destination")
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to place file"), "path", dest)
	}
	return nil
}

// newDigest returns a hash for the given algorithm tag.
func newDigest(algo string) (hash.Hash, error) {
	switch algo {
	case "sha1":
		return sha1.New(), nil //nolint:gosec // see package comment
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, zerr.With(zerr.New("unsupported hash algorithm"), "algo", algo)
	}
}

// HashFile computes the hash of an existing file with the same algorithm as
// the given reference. Used by the materializer to reconcile on-disk state.
func HashFile(path string, like domain.HashRef) (domain.HashRef, error) {
	digest, err := newDigest(like.Algo)
	if err != nil {
		return domain.HashRef{}, err
	}
	// The open error is returned as-is so callers can distinguish a missing
	// file from a broken one.
	f, err := os.Open(path)
	if err != nil {
		return domain.HashRef{}, err
	}
	defer f.Close() //nolint:errcheck // read-only close

	if _, err := io.Copy(digest, f); err != nil {
		return domain.HashRef{}, zerr.With(zerr.Wrap(err, "failed to hash file"), "path", path)
	}
	return domain.HashRef{Algo: like.Algo, Hex: hex.EncodeToString(digest.Sum(nil))}, nil
}
