package domain

import (
	"io/fs"
	"path"
	"strings"
)

// File names and permissions used across the instance tree.
const (
	// ManifestFileName is the declared manifest, one per instance.
	ManifestFileName = "mcpack.yaml"
	// LockFileName is the committed lock, one per instance.
	LockFileName = "mcpack.lock.yaml"
	// StoreDirName is the content-addressed cache directory inside the
	// instance's state directory.
	StoreDirName = ".mcpack/store"

	// DirPerm is the permission for created directories.
	DirPerm fs.FileMode = 0o755
	// FilePerm is the permission for created files.
	FilePerm fs.FileMode = 0o644
)

// Instance-relative install paths. All paths are slash-separated; the
// materializer converts to the host separator.

// ClientPath returns the install path of the runtime's main jar.
func ClientPath(runtimeVersion string) string {
	return path.Join("versions", runtimeVersion, runtimeVersion+".jar")
}

// LibraryPath returns the install path of a runtime or loader library.
func LibraryPath(repoPath string) string {
	return path.Join("libraries", repoPath)
}

// AssetPath returns the install path of an asset object. Assets are stored
// under a two-hex-character fan-out of their own hash. A hash too short to
// fan out maps to a directory of its full value; registry clients reject
// such hashes before entries are built.
func AssetPath(hash string) string {
	fan := hash
	if len(fan) > 2 {
		fan = fan[:2]
	}
	return path.Join("assets", "objects", fan, hash)
}

// AssetIndexPath returns the install path of an asset index document.
func AssetIndexPath(indexID string) string {
	return path.Join("assets", "indexes", indexID+".json")
}

// ModPath returns the install path of a mod file. The filename must already
// have passed SafeFileName; callers own that check because the registry
// controls it.
func ModPath(filename string) string {
	return path.Join("mods", filename)
}

// SafeFileName reports whether a registry-supplied filename is safe to place
// under the instance tree: a plain name with no separators and no traversal.
func SafeFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// SafeInstallPath reports whether an instance-relative install path stays
// inside the instance directory: relative, slash-separated, and never
// escaping through "..".
func SafeInstallPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return false
	}
	cleaned := path.Clean(p)
	return cleaned != ".." && !strings.HasPrefix(cleaned, "../")
}
