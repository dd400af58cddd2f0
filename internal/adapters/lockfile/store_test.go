package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funny233-github/mcpack/internal/adapters/lockfile"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest() *domain.Manifest {
	return &domain.Manifest{
		RuntimeVersion: "1.20.1",
		LoaderKind:     domain.LoaderFabric,
		LoaderVersion:  "0.15.11",
		Mirror:         "bmclapi",
		Mods: []domain.ModRequirement{
			{Name: "sodium"},
			{Name: "lithium", Version: "mc1.20.1-0.11.2"},
		},
	}
}

func testLock(fingerprint string) *domain.Lock {
	l := domain.NewLock(fingerprint)
	dep := domain.LockEntry{
		Name:       "fabric-api",
		Role:       domain.RoleModDependency,
		Version:    "0.92.0",
		URLs:       []string{"https://cdn.modrinth.com/data/P7dR8mSH/fabric-api-0.92.0.jar"},
		Hash:       domain.HashRef{Algo: "sha512", Hex: "beef"},
		Size:       2048,
		Path:       "mods/fabric-api-0.92.0.jar",
		RequiredBy: []string{"sodium"},
	}
	l.Entries = []domain.LockEntry{
		{
			Name:    "sodium",
			Role:    domain.RoleMod,
			Version: "0.5.0",
			URLs:    []string{"https://cdn.modrinth.com/data/AANobbMI/sodium-0.5.0.jar"},
			Hash:    domain.HashRef{Algo: "sha512", Hex: "cafe"},
			Size:    1024,
			Path:    "mods/sodium-0.5.0.jar",
		},
		dep,
	}
	return l
}

func TestStore_ManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()

	want := testManifest()
	require.NoError(t, store.SaveManifest(dir, want))

	got, err := store.LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_LoadManifest_NotFound(t *testing.T) {
	store := lockfile.NewStore()
	_, err := store.LoadManifest(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestStore_LoadManifest_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	raw := "runtime: 1.20.1\nloadr: fabric\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName), []byte(raw), 0o644))

	_, err := lockfile.NewStore().LoadManifest(dir)
	require.Error(t, err, "a misspelled key must not be silently ignored")
	assert.Contains(t, err.Error(), "loadr")
}

func TestStore_LoadManifest_DuplicateMod(t *testing.T) {
	dir := t.TempDir()
	raw := "runtime: 1.20.1\nmods:\n  - name: sodium\n  - name: sodium\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName), []byte(raw), 0o644))

	_, err := lockfile.NewStore().LoadManifest(dir)
	assert.ErrorIs(t, err, domain.ErrDuplicateModDeclared)
}

func TestStore_LockRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()

	want := testLock("cafebabe00000000")
	require.NoError(t, store.CommitLock(dir, want))

	got, err := store.LoadLock(dir)
	require.NoError(t, err)
	assert.Equal(t, want.Fingerprint, got.Fingerprint)
	assert.Equal(t, want.Entries, got.Entries)
}

func TestStore_CommitLock_Deterministic(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()
	path := filepath.Join(dir, domain.LockFileName)

	require.NoError(t, store.CommitLock(dir, testLock("f")))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// Same entries, reversed declaration order: serialization must not
	// depend on it.
	reordered := testLock("f")
	reordered.Entries[0], reordered.Entries[1] = reordered.Entries[1], reordered.Entries[0]
	require.NoError(t, store.CommitLock(dir, reordered))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestStore_LoadLock_NotFound(t *testing.T) {
	_, err := lockfile.NewStore().LoadLock(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrLockNotFound)
}

func TestStore_LoadLock_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.LockFileName), []byte("{{nope"), 0o644))

	_, err := lockfile.NewStore().LoadLock(dir)
	assert.ErrorIs(t, err, domain.ErrCorruptLock)
}

func TestStore_CommitLock_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()

	bad := domain.NewLock("f")
	bad.Entries = []domain.LockEntry{{Name: "sodium", Role: domain.RoleMod}}
	assert.Error(t, store.CommitLock(dir, bad))

	_, err := os.Stat(filepath.Join(dir, domain.LockFileName))
	assert.True(t, os.IsNotExist(err), "invalid lock must not be written")
}
