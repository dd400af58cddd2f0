package reconcile_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/funny233-github/mcpack/internal/adapters/cas"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/funny233-github/mcpack/internal/core/ports/mocks"
	"github.com/funny233-github/mcpack/internal/engine/download"
	"github.com/funny233-github/mcpack/internal/engine/materialize"
	"github.com/funny233-github/mcpack/internal/engine/reconcile"
	"github.com/funny233-github/mcpack/internal/engine/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// sha1("hello world")
const helloSHA1 = "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

type nopVertex struct{}

func (nopVertex) Complete(error) {}
func (nopVertex) Cached()        {}

type nopTelemetry struct{}

func (nopTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, nopVertex{}
}
func (nopTelemetry) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type fixture struct {
	reconciler *reconcile.Reconciler
	runtime    *mocks.MockRuntimeRegistry
	loader     *mocks.MockLoaderRegistry
	mods       *mocks.MockModRegistry
	fetcher    *mocks.MockFetcher
	instance   *mocks.MockInstanceStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		runtime:  mocks.NewMockRuntimeRegistry(ctrl),
		loader:   mocks.NewMockLoaderRegistry(ctrl),
		mods:     mocks.NewMockModRegistry(ctrl),
		fetcher:  mocks.NewMockFetcher(ctrl),
		instance: mocks.NewMockInstanceStore(ctrl),
	}

	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	engine := download.New(f.fetcher, store, nopTelemetry{}, nopLogger{})
	material := materialize.New(store, nopLogger{})
	versions := resolve.NewVersionResolver(f.runtime, f.loader).WithOS("linux")
	modsResolver := resolve.NewModResolver(f.mods)

	f.reconciler = reconcile.New(versions, modsResolver, engine, material, f.instance, nopLogger{})
	return f
}

func (f *fixture) expectRuntime() {
	f.runtime.EXPECT().VersionDetail(gomock.Any(), "1.20.1").Return(&domain.VersionDetail{
		ID:         "1.20.1",
		ClientURL:  "https://piston-data.mojang.com/client.jar",
		ClientSHA1: helloSHA1,
		ClientSize: 11,
		AssetIndex: domain.AssetIndexRef{
			ID:   "5",
			URL:  "https://piston-meta.mojang.com/5.json",
			SHA1: helloSHA1,
			Size: 11,
		},
	}, nil)
	f.runtime.EXPECT().AssetObjects(gomock.Any(), gomock.Any()).Return(map[string]domain.AssetObject{}, nil)
}

func (f *fixture) expectSodium(versions ...domain.ModVersion) {
	f.mods.EXPECT().ProjectVersions(gomock.Any(), "sodium").Return(versions, nil)
}

func sodiumVersion(number string, published time.Time) domain.ModVersion {
	return domain.ModVersion{
		Name:          "sodium",
		VersionNumber: number,
		Published:     published,
		GameVersions:  []string{"1.20.1"},
		Loaders:       []string{"fabric"},
		Files: []domain.ModFile{{
			Filename: "sodium-" + number + ".jar",
			URL:      "https://cdn.modrinth.com/sodium-" + number + ".jar",
			SHA1:     helloSHA1,
			Size:     11,
			Primary:  true,
		}},
	}
}

func manifest() *domain.Manifest {
	return &domain.Manifest{
		RuntimeVersion: "1.20.1",
		LoaderKind:     domain.LoaderFabric,
		LoaderVersion:  "0.15.11",
		Mods:           []domain.ModRequirement{{Name: "sodium"}},
	}
}

func official(t *testing.T) domain.Mirror {
	t.Helper()
	m, err := domain.MirrorByName("official")
	require.NoError(t, err)
	return m
}

func TestReconciler_Resolve(t *testing.T) {
	f := newFixture(t)
	f.expectRuntime()
	f.loader.EXPECT().Profile(gomock.Any(), "1.20.1", "0.15.11").Return(&domain.LoaderProfile{
		LoaderVersion: "0.15.11",
	}, nil)
	f.expectSodium(sodiumVersion("0.5.0", time.Now()))

	m := manifest()
	lock, err := f.reconciler.Resolve(context.Background(), m, official(t), reconcile.ModeLatest, nil)
	require.NoError(t, err)

	assert.Equal(t, reconcile.StateResolved, f.reconciler.State())
	assert.Equal(t, m.Fingerprint(), lock.Fingerprint)
	assert.NoError(t, lock.Validate())

	_, ok := lock.Entry(domain.RoleMod, "sodium")
	assert.True(t, ok)
	_, ok = lock.Entry(domain.RoleRuntime, "client")
	assert.True(t, ok)
}

func TestReconciler_Resolve_PinKeepsLockedVersion(t *testing.T) {
	f := newFixture(t)
	f.expectRuntime()
	f.loader.EXPECT().Profile(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.LoaderProfile{}, nil)
	f.expectSodium(
		sodiumVersion("0.4.10", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		sodiumVersion("0.5.0", time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)),
	)

	prior := domain.NewLock("old")
	prior.Entries = []domain.LockEntry{{
		Name:    "sodium",
		Role:    domain.RoleMod,
		Version: "0.4.10",
		URLs:    []string{"https://cdn.modrinth.com/sodium-0.4.10.jar"},
		Hash:    domain.HashRef{Algo: "sha1", Hex: helloSHA1},
		Path:    "mods/sodium-0.4.10.jar",
	}}

	lock, err := f.reconciler.Resolve(context.Background(), manifest(), official(t), reconcile.ModePin, prior)
	require.NoError(t, err)

	entry, ok := lock.Entry(domain.RoleMod, "sodium")
	require.True(t, ok)
	assert.Equal(t, "0.4.10", entry.Version, "pin mode must keep the locked version")
}

func TestReconciler_Resolve_FailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.runtime.EXPECT().VersionDetail(gomock.Any(), "1.20.1").Return(nil, domain.ErrVersionNotFound)

	_, err := f.reconciler.Resolve(context.Background(), manifest(), official(t), reconcile.ModeLatest, nil)
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
	assert.Equal(t, reconcile.StateFailed, f.reconciler.State())
}

func TestReconciler_Apply(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	next := domain.NewLock("f")
	next.Entries = []domain.LockEntry{{
		Name:    "sodium",
		Role:    domain.RoleMod,
		Version: "0.5.0",
		URLs:    []string{"https://cdn.modrinth.com/sodium-0.5.0.jar"},
		Hash:    domain.HashRef{Algo: "sha1", Hex: helloSHA1},
		Size:    11,
		Path:    "mods/sodium-0.5.0.jar",
	}}

	f.fetcher.EXPECT().
		Fetch(gomock.Any(), "https://cdn.modrinth.com/sodium-0.5.0.jar").
		Return(io.NopCloser(strings.NewReader("hello world")), nil)
	f.instance.EXPECT().CommitLock(dir, next).Return(nil)

	require.NoError(t, f.reconciler.Apply(context.Background(), dir, nil, next))
	assert.Equal(t, reconcile.StateCommitted, f.reconciler.State())
	assert.FileExists(t, filepath.Join(dir, "mods", "sodium-0.5.0.jar"))
}

func TestReconciler_Apply_DownloadFailureBlocksCommit(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	next := domain.NewLock("f")
	next.Entries = []domain.LockEntry{{
		Name:    "sodium",
		Role:    domain.RoleMod,
		Version: "0.5.0",
		URLs:    []string{"https://cdn.modrinth.com/sodium-0.5.0.jar"},
		Hash:    domain.HashRef{Algo: "sha1", Hex: helloSHA1},
		Size:    11,
		Path:    "mods/sodium-0.5.0.jar",
	}}

	// Wrong bytes on every source: the lock must not be committed and no
	// file may appear.
	f.fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(io.NopCloser(strings.NewReader("wrong bytes")), nil)

	err := f.reconciler.Apply(context.Background(), dir, nil, next)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.Equal(t, reconcile.StateFailed, f.reconciler.State())
	assert.NoFileExists(t, filepath.Join(dir, "mods", "sodium-0.5.0.jar"))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "a failed pass must leave the instance untouched")
}

func TestReconciler_Apply_EmptyDiffStillCommits(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	lock := domain.NewLock("f")
	f.instance.EXPECT().CommitLock(dir, lock).Return(nil)

	require.NoError(t, f.reconciler.Apply(context.Background(), dir, lock, lock))
	assert.Equal(t, reconcile.StateCommitted, f.reconciler.State())
}
