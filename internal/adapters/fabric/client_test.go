package fabric_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/funny233-github/mcpack/internal/adapters/fabric"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func newClient(t *testing.T, ctrl *gomock.Controller) (*fabric.Client, *mocks.MockFetcher) {
	t.Helper()
	mirror, err := domain.MirrorByName("official")
	require.NoError(t, err)
	fetcher := mocks.NewMockFetcher(ctrl)
	return fabric.NewClient(fetcher, mirror), fetcher
}

func TestClient_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, fetcher := newClient(t, ctrl)

	doc := `{
	  "id": "fabric-loader-0.15.11-1.20.1",
	  "mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
	  "libraries": [
	    {"name": "net.fabricmc:fabric-loader:0.15.11", "url": "https://maven.fabricmc.net/", "sha1": "ld0sha", "size": 30},
	    {"name": "net.fabricmc:sponge-mixin:0.13.3", "url": "https://maven.fabricmc.net/", "sha1": "mx0sha", "size": 40}
	  ]
	}`
	fetcher.EXPECT().
		Fetch(gomock.Any(), "https://meta.fabricmc.net/v2/versions/loader/1.20.1/0.15.11/profile/json").
		Return(body(doc), nil)

	profile, err := client.Profile(context.Background(), "1.20.1", "0.15.11")
	require.NoError(t, err)

	assert.Equal(t, "0.15.11", profile.LoaderVersion)
	assert.Equal(t, "net.fabricmc.loader.impl.launch.knot.KnotClient", profile.MainClass)
	require.Len(t, profile.Libraries, 2)
	assert.Equal(t,
		"net/fabricmc/sponge-mixin/0.13.3/sponge-mixin-0.13.3.jar",
		profile.Libraries[1].Path)
	assert.Equal(t,
		"https://maven.fabricmc.net/net/fabricmc/sponge-mixin/0.13.3/sponge-mixin-0.13.3.jar",
		profile.Libraries[1].URL)
}

func TestClient_Profile_EscapesVersionIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, fetcher := newClient(t, ctrl)

	fetcher.EXPECT().
		Fetch(gomock.Any(), "https://meta.fabricmc.net/v2/versions/loader/1.14%20Pre-Release%205/0.15.11/profile/json").
		Return(body(`{"id": "x", "mainClass": "y", "libraries": []}`), nil)

	_, err := client.Profile(context.Background(), "1.14 Pre-Release 5", "0.15.11")
	require.NoError(t, err)
}

func TestClient_Profile_Incompatible(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, fetcher := newClient(t, ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, zerr.New("404 not found"))

	_, err := client.Profile(context.Background(), "1.20.1", "9.9.9")
	assert.ErrorIs(t, err, domain.ErrLoaderIncompatible)
}

func TestClient_Profile_TransientStaysTransient(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, fetcher := newClient(t, ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, domain.ErrTransientNetwork)

	_, err := client.Profile(context.Background(), "1.20.1", "0.15.11")
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	assert.NotErrorIs(t, err, domain.ErrLoaderIncompatible,
		"a flaky network must not be reported as an incompatible loader")
}

func TestClient_LoaderVersions(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, fetcher := newClient(t, ctrl)

	doc := `[
	  {"loader": {"version": "0.15.11", "stable": true}},
	  {"loader": {"version": "0.15.10", "stable": true}}
	]`
	fetcher.EXPECT().
		Fetch(gomock.Any(), "https://meta.fabricmc.net/v2/versions/loader/1.20.1").
		Return(body(doc), nil)

	versions, err := client.LoaderVersions(context.Background(), "1.20.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.15.11", "0.15.10"}, versions)
}

func TestClient_LoaderVersions_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	client, fetcher := newClient(t, ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(body(`[]`), nil)

	_, err := client.LoaderVersions(context.Background(), "1.0")
	assert.ErrorIs(t, err, domain.ErrLoaderIncompatible)
}
