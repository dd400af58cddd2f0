package mojang

// Wire types for the runtime registry documents. Unknown fields are ignored:
// the registry adds keys over time and an installer should keep working, so
// forward compatibility is deliberate here (unlike the local manifest and
// lock, which reject unknown keys).

type versionManifestJSON struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"versions"`
}

type versionDetailJSON struct {
	ID        string `json:"id"`
	Downloads struct {
		Client artifactJSON `json:"client"`
	} `json:"downloads"`
	AssetIndex struct {
		ID   string `json:"id"`
		SHA1 string `json:"sha1"`
		Size int64  `json:"size"`
		URL  string `json:"url"`
	} `json:"assetIndex"`
	Libraries []libraryJSON `json:"libraries"`
}

type artifactJSON struct {
	Path string `json:"path"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type libraryJSON struct {
	Name      string `json:"name"`
	Downloads struct {
		Artifact    *artifactJSON           `json:"artifact"`
		Classifiers map[string]artifactJSON `json:"classifiers"`
	} `json:"downloads"`
	Natives map[string]string `json:"natives"`
	Rules   []ruleJSON        `json:"rules"`
}

type ruleJSON struct {
	Action string `json:"action"`
	OS     struct {
		Name string `json:"name"`
	} `json:"os"`
}

type assetIndexJSON struct {
	Objects map[string]struct {
		Hash string `json:"hash"`
		Size int64  `json:"size"`
	} `json:"objects"`
}
