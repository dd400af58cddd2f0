package resolve_test

import (
	"context"
	"testing"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports/mocks"
	"github.com/funny233-github/mcpack/internal/engine/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func official(t *testing.T) domain.Mirror {
	t.Helper()
	m, err := domain.MirrorByName("official")
	require.NoError(t, err)
	return m
}

func testDetail() *domain.VersionDetail {
	return &domain.VersionDetail{
		ID:         "1.20.1",
		ClientURL:  "https://piston-data.mojang.com/v1/objects/dd/client.jar",
		ClientSHA1: "client0sha",
		ClientSize: 100,
		AssetIndex: domain.AssetIndexRef{
			ID:   "5",
			URL:  "https://piston-meta.mojang.com/v1/packages/ee/5.json",
			SHA1: "index0sha",
			Size: 50,
		},
		Libraries: []domain.RuntimeLibrary{
			{
				Name: "org.ow2.asm:asm:9.3",
				Path: "org/ow2/asm/asm/9.3/asm-9.3.jar",
				SHA1: "asm0sha",
				URL:  "https://libraries.minecraft.net/org/ow2/asm/asm/9.3/asm-9.3.jar",
			},
			{
				Name:   "org.lwjgl:lwjgl:3.3.1",
				Path:   "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar",
				SHA1:   "lw0sha",
				URL:    "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar",
				Native: true,
			},
			{
				Name:  "com.apple:AppleJavaExtensions:1.4",
				Path:  "com/apple/AppleJavaExtensions/1.4/AppleJavaExtensions-1.4.jar",
				SHA1:  "ap0sha",
				URL:   "https://libraries.minecraft.net/com/apple/AppleJavaExtensions/1.4/AppleJavaExtensions-1.4.jar",
				Rules: []domain.LibraryRule{{Action: "allow", OSName: "osx"}},
			},
		},
	}
}

func entryNames(entries []domain.LockEntry, role domain.Role) []string {
	var out []string
	for _, e := range entries {
		if e.Role == role {
			out = append(out, e.Name)
		}
	}
	return out
}

func findEntry(t *testing.T, entries []domain.LockEntry, role domain.Role, name string) domain.LockEntry {
	t.Helper()
	for _, e := range entries {
		if e.Role == role && e.Name == name {
			return e
		}
	}
	t.Fatalf("entry %s/%s not found", role, name)
	return domain.LockEntry{}
}

func TestVersionResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockRuntimeRegistry(ctrl)
	loader := mocks.NewMockLoaderRegistry(ctrl)

	runtime.EXPECT().VersionDetail(gomock.Any(), "1.20.1").Return(testDetail(), nil)
	runtime.EXPECT().AssetObjects(gomock.Any(), gomock.Any()).Return(map[string]domain.AssetObject{
		"minecraft/sounds/ambient.ogg": {Hash: "abcdef1234", Size: 77},
	}, nil)

	r := resolve.NewVersionResolver(runtime, loader).WithOS("linux")
	m := &domain.Manifest{RuntimeVersion: "1.20.1"}

	entries, err := r.Resolve(context.Background(), m, official(t))
	require.NoError(t, err)

	client := findEntry(t, entries, domain.RoleRuntime, "client")
	assert.Equal(t, "versions/1.20.1/1.20.1.jar", client.Path)
	assert.Equal(t, "sha1", client.Hash.Algo)

	// Natives are skipped outright; the osx-only library is rule-excluded
	// on linux.
	runtimeNames := entryNames(entries, domain.RoleRuntime)
	assert.Contains(t, runtimeNames, "org.ow2.asm:asm:9.3")
	assert.NotContains(t, runtimeNames, "org.lwjgl:lwjgl:3.3.1")
	assert.NotContains(t, runtimeNames, "com.apple:AppleJavaExtensions:1.4")

	index := findEntry(t, entries, domain.RoleAsset, "index/5")
	assert.Equal(t, "assets/indexes/5.json", index.Path)

	object := findEntry(t, entries, domain.RoleAsset, "minecraft/sounds/ambient.ogg")
	assert.Equal(t, "assets/objects/ab/abcdef1234", object.Path)
	require.NotEmpty(t, object.URLs)
	assert.Equal(t, "https://resources.download.minecraft.net/ab/abcdef1234", object.URLs[0])
}

func TestVersionResolver_Resolve_RuleAllowsOnMatchingOS(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockRuntimeRegistry(ctrl)
	loader := mocks.NewMockLoaderRegistry(ctrl)

	runtime.EXPECT().VersionDetail(gomock.Any(), "1.20.1").Return(testDetail(), nil)
	runtime.EXPECT().AssetObjects(gomock.Any(), gomock.Any()).Return(map[string]domain.AssetObject{}, nil)

	r := resolve.NewVersionResolver(runtime, loader).WithOS("osx")
	entries, err := r.Resolve(context.Background(), &domain.Manifest{RuntimeVersion: "1.20.1"}, official(t))
	require.NoError(t, err)

	assert.Contains(t, entryNames(entries, domain.RoleRuntime), "com.apple:AppleJavaExtensions:1.4")
}

func TestVersionResolver_Resolve_LoaderOverridesLibrary(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockRuntimeRegistry(ctrl)
	loader := mocks.NewMockLoaderRegistry(ctrl)

	runtime.EXPECT().VersionDetail(gomock.Any(), "1.20.1").Return(testDetail(), nil)
	runtime.EXPECT().AssetObjects(gomock.Any(), gomock.Any()).Return(map[string]domain.AssetObject{}, nil)
	loader.EXPECT().Profile(gomock.Any(), "1.20.1", "0.15.11").Return(&domain.LoaderProfile{
		LoaderVersion: "0.15.11",
		MainClass:     "net.fabricmc.loader.impl.launch.knot.KnotClient",
		Libraries: []domain.RuntimeLibrary{
			{
				// Same logical name as the runtime's asm, newer version.
				Name: "org.ow2.asm:asm:9.6",
				Path: "org/ow2/asm/asm/9.6/asm-9.6.jar",
				SHA1: "asm6sha",
				URL:  "https://maven.fabricmc.net/org/ow2/asm/asm/9.6/asm-9.6.jar",
			},
			{
				Name: "net.fabricmc:fabric-loader:0.15.11",
				Path: "net/fabricmc/fabric-loader/0.15.11/fabric-loader-0.15.11.jar",
				SHA1: "ld0sha",
				URL:  "https://maven.fabricmc.net/net/fabricmc/fabric-loader/0.15.11/fabric-loader-0.15.11.jar",
			},
		},
	}, nil)

	r := resolve.NewVersionResolver(runtime, loader).WithOS("linux")
	m := &domain.Manifest{
		RuntimeVersion: "1.20.1",
		LoaderKind:     domain.LoaderFabric,
		LoaderVersion:  "0.15.11",
	}
	entries, err := r.Resolve(context.Background(), m, official(t))
	require.NoError(t, err)

	assert.NotContains(t, entryNames(entries, domain.RoleRuntime), "org.ow2.asm:asm:9.3",
		"the loader's asm must supersede the runtime's")
	loaderNames := entryNames(entries, domain.RoleLoader)
	assert.Contains(t, loaderNames, "org.ow2.asm:asm:9.6")
	assert.Contains(t, loaderNames, "net.fabricmc:fabric-loader:0.15.11")
}

func TestVersionResolver_Resolve_LatestLoaderWhenUnpinned(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockRuntimeRegistry(ctrl)
	loader := mocks.NewMockLoaderRegistry(ctrl)

	runtime.EXPECT().VersionDetail(gomock.Any(), "1.20.1").Return(testDetail(), nil)
	runtime.EXPECT().AssetObjects(gomock.Any(), gomock.Any()).Return(map[string]domain.AssetObject{}, nil)
	loader.EXPECT().LoaderVersions(gomock.Any(), "1.20.1").Return([]string{"0.15.11", "0.15.10"}, nil)
	loader.EXPECT().Profile(gomock.Any(), "1.20.1", "0.15.11").Return(&domain.LoaderProfile{
		LoaderVersion: "0.15.11",
	}, nil)

	r := resolve.NewVersionResolver(runtime, loader).WithOS("linux")
	m := &domain.Manifest{RuntimeVersion: "1.20.1", LoaderKind: domain.LoaderFabric}
	_, err := r.Resolve(context.Background(), m, official(t))
	require.NoError(t, err)
}

func TestVersionResolver_Resolve_UnknownVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	runtime := mocks.NewMockRuntimeRegistry(ctrl)
	loader := mocks.NewMockLoaderRegistry(ctrl)

	runtime.EXPECT().VersionDetail(gomock.Any(), "0.0.0").Return(nil, domain.ErrVersionNotFound)

	r := resolve.NewVersionResolver(runtime, loader)
	_, err := r.Resolve(context.Background(), &domain.Manifest{RuntimeVersion: "0.0.0"}, official(t))
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)
}
