package modrinth

// Wire types for the Modrinth v2 API. Unknown keys are ignored so new
// fields on the server side do not break older clients.

type versionJSON struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	VersionNumber string           `json:"version_number"`
	DatePublished string           `json:"date_published"`
	GameVersions  []string         `json:"game_versions"`
	Loaders       []string         `json:"loaders"`
	Files         []fileJSON       `json:"files"`
	Dependencies  []dependencyJSON `json:"dependencies"`
}

type fileJSON struct {
	Filename string     `json:"filename"`
	URL      string     `json:"url"`
	Hashes   hashesJSON `json:"hashes"`
	Size     int64      `json:"size"`
	Primary  bool       `json:"primary"`
}

type hashesJSON struct {
	SHA1   string `json:"sha1"`
	SHA512 string `json:"sha512"`
}

type dependencyJSON struct {
	ProjectID      string `json:"project_id"`
	VersionID      string `json:"version_id"`
	DependencyType string `json:"dependency_type"`
}

type searchResponseJSON struct {
	Hits []searchHitJSON `json:"hits"`
}

type searchHitJSON struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Downloads   int64  `json:"downloads"`
}

type projectJSON struct {
	Slug string `json:"slug"`
}
