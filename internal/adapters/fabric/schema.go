package fabric

// Wire types for the Fabric meta v2 API. Unknown keys are ignored so new
// fields on the server side do not break older clients.

type profileJSON struct {
	ID        string        `json:"id"`
	MainClass string        `json:"mainClass"`
	Libraries []libraryJSON `json:"libraries"`
}

type libraryJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
}

type loaderForGameJSON struct {
	Loader loaderJSON `json:"loader"`
}

type loaderJSON struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}
