package download_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"

	"github.com/funny233-github/mcpack/internal/adapters/cas"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/funny233-github/mcpack/internal/core/ports/mocks"
	"github.com/funny233-github/mcpack/internal/engine/download"
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

func newEngine(t *testing.T, fetcher ports.Fetcher) (*download.Engine, *cas.Store) {
	t.Helper()
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)
	return download.New(fetcher, store, nopTelemetry{}, nopLogger{}), store
}

func helloArtifact(name string, urls ...string) domain.Artifact {
	return domain.Artifact{
		Name: name,
		URLs: urls,
		Hash: domain.HashRef{Algo: "sha1", Hex: helloSHA1},
		Size: 11,
		Path: "mods/" + name,
	}
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestEngine_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	engine, store := newEngine(t, fetcher)

	fetcher.EXPECT().Fetch(gomock.Any(), "https://a/hello").Return(body("hello world"), nil)

	report := engine.Fetch(context.Background(), []domain.Artifact{helloArtifact("hello", "https://a/hello")})
	require.NoError(t, report.Err())
	assert.Equal(t, 1, report.Fetched)
	assert.True(t, store.Has(domain.HashRef{Algo: "sha1", Hex: helloSHA1}))
}

func TestEngine_Fetch_CacheHitSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	engine, store := newEngine(t, fetcher)

	hash := domain.HashRef{Algo: "sha1", Hex: helloSHA1}
	require.NoError(t, store.Put(context.Background(), strings.NewReader("hello world"), hash))

	// No fetcher expectations: a cache hit must not touch the network.
	report := engine.Fetch(context.Background(), []domain.Artifact{helloArtifact("hello", "https://a/hello")})
	require.NoError(t, report.Err())
	assert.Equal(t, 1, report.Cached)
}

func TestEngine_Fetch_DeduplicatesByHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	engine, _ := newEngine(t, fetcher)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(body("hello world"), nil).Times(1)

	// Same content referenced from two destinations: one transfer.
	report := engine.Fetch(context.Background(), []domain.Artifact{
		helloArtifact("a.jar", "https://a/hello"),
		helloArtifact("b.jar", "https://a/hello"),
	})
	require.NoError(t, report.Err())
	assert.Equal(t, 1, report.Fetched)
}

func TestEngine_Fetch_RetriesTransient(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mocks.NewMockFetcher(ctrl)
		engine, _ := newEngine(t, fetcher)

		gomock.InOrder(
			fetcher.EXPECT().Fetch(gomock.Any(), "https://a/hello").Return(nil, domain.ErrTransientNetwork),
			fetcher.EXPECT().Fetch(gomock.Any(), "https://a/hello").Return(body("hello world"), nil),
		)

		report := engine.Fetch(context.Background(), []domain.Artifact{helloArtifact("hello", "https://a/hello")})
		require.NoError(t, report.Err())
		assert.Equal(t, 1, report.Fetched)
	})
}

func TestEngine_Fetch_IntegrityFailureMovesToNextSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	engine, _ := newEngine(t, fetcher)

	// The mirror serves wrong bytes once; it must not be retried, the
	// canonical source is tried instead.
	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), "https://mirror/hello").Return(body("wrong bytes"), nil),
		fetcher.EXPECT().Fetch(gomock.Any(), "https://canonical/hello").Return(body("hello world"), nil),
	)

	report := engine.Fetch(context.Background(), []domain.Artifact{
		helloArtifact("hello", "https://mirror/hello", "https://canonical/hello"),
	})
	require.NoError(t, report.Err())
	assert.Equal(t, 1, report.Fetched)
}

func TestEngine_Fetch_AllSourcesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	engine, _ := newEngine(t, fetcher)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(body("wrong bytes"), nil).Times(2)

	report := engine.Fetch(context.Background(), []domain.Artifact{
		helloArtifact("hello", "https://mirror/hello", "https://canonical/hello"),
	})
	err := report.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestEngine_Fetch_BatchRunsToCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	engine, _ := newEngine(t, fetcher)

	fetcher.EXPECT().Fetch(gomock.Any(), "https://a/bad").Return(body("wrong bytes"), nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://a/hello").Return(body("hello world"), nil)

	bad := domain.Artifact{
		Name: "bad",
		URLs: []string{"https://a/bad"},
		Hash: domain.HashRef{Algo: "sha1", Hex: strings.Repeat("0", 40)},
		Path: "mods/bad.jar",
	}
	report := engine.Fetch(context.Background(), []domain.Artifact{
		bad,
		helloArtifact("hello", "https://a/hello"),
	})

	// The failing artifact is reported; the healthy one still lands.
	assert.Equal(t, 1, report.Fetched)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "bad", report.Failures[0].Name)
	assert.ErrorIs(t, report.Err(), domain.ErrDownloadFailed)
}
