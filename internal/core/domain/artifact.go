package domain

import "time"

// Artifact is the transient, download-engine-facing view of one file to
// fetch: an ordered source list, the expected content hash, and the
// instance-relative destination. Instances are created per resolution pass
// and discarded after materialization.
type Artifact struct {
	Name string
	URLs []string
	Hash HashRef
	Size int64
	Path string
}

// CacheKey keys the artifact in the content store. It derives from the hash,
// not the URL, so identical content served from different mirrors
// deduplicates to a single blob and a single fetch.
func (a Artifact) CacheKey() string { return a.Hash.String() }

// LibraryRule is a platform condition on a runtime library, evaluated
// against the current OS.
type LibraryRule struct {
	Action string
	OSName string
}

// RuntimeLibrary is one library declared by a runtime version or loader
// profile.
type RuntimeLibrary struct {
	// Name is the maven coordinate "group:artifact:version".
	Name string
	// Path is the repository-relative jar path.
	Path string
	SHA1 string
	Size int64
	URL  string
	// Native libraries and rule-excluded libraries are filtered out during
	// version resolution.
	Native bool
	Rules  []LibraryRule
}

// AssetIndexRef points at a runtime version's asset index document.
type AssetIndexRef struct {
	ID   string
	URL  string
	SHA1 string
	Size int64
}

// AssetObject is one entry of an asset index.
type AssetObject struct {
	Hash string
	Size int64
}

// VersionDetail is the runtime registry's description of one version: the
// client artifact, its libraries, and the asset index.
type VersionDetail struct {
	ID         string
	ClientURL  string
	ClientSHA1 string
	ClientSize int64
	AssetIndex AssetIndexRef
	Libraries  []RuntimeLibrary
}

// LoaderProfile is the loader registry's artifact list for one
// (runtime, loader) pair.
type LoaderProfile struct {
	LoaderVersion string
	MainClass     string
	Libraries     []RuntimeLibrary
}

// VersionKind filters runtime version listings.
type VersionKind string

const (
	// VersionAll lists every published runtime version.
	VersionAll VersionKind = "all"
	// VersionRelease lists stable releases only.
	VersionRelease VersionKind = "release"
	// VersionSnapshot lists snapshots only.
	VersionSnapshot VersionKind = "snapshot"
)

// DependencyKind classifies a mod's declared dependency edge.
type DependencyKind string

const (
	// DependencyRequired edges are resolved transitively.
	DependencyRequired DependencyKind = "required"
	// DependencyOptional edges are recorded but never auto-installed.
	DependencyOptional DependencyKind = "optional"
	// DependencyIncompatible edges mark mods that must not be co-installed.
	DependencyIncompatible DependencyKind = "incompatible"
)

// ModDependency is one declared edge of a mod version.
type ModDependency struct {
	Name string
	// Version is an exact version constraint: a version number or a
	// registry-assigned version id, or empty for any compatible.
	Version string
	Kind    DependencyKind
}

// ModFile is one downloadable file of a mod version.
type ModFile struct {
	Filename string
	URL      string
	SHA1     string
	SHA512   string
	Size     int64
	Primary  bool
}

// ModVersion is one published version of a registry project.
type ModVersion struct {
	Name string
	// ID is the registry-assigned opaque version id; dependency edges may
	// pin a version by it instead of by number.
	ID            string
	VersionNumber string
	Published     time.Time
	GameVersions  []string
	Loaders       []string
	Files         []ModFile
	Dependencies  []ModDependency
}

// PrimaryFile returns the file to install for this version: the one flagged
// primary, else the first.
func (v ModVersion) PrimaryFile() (ModFile, bool) {
	for _, f := range v.Files {
		if f.Primary {
			return f, true
		}
	}
	if len(v.Files) > 0 {
		return v.Files[0], true
	}
	return ModFile{}, false
}

// ModSummary is one ranked hit of a registry search.
type ModSummary struct {
	Slug        string
	Title       string
	Description string
	Downloads   int64
}
