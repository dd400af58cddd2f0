package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// Mirror is one named set of base URLs for the registries and artifact
// hosts. The manifest selects a mirror by name; resolvers put the mirror URL
// first in every artifact's source list with the canonical URL as fallback.
type Mirror struct {
	Name            string
	VersionManifest string
	Libraries       string
	Assets          string
	Client          string
	FabricMeta      string
}

// Built-in mirrors, keyed by the name used in the manifest.
var mirrors = map[string]Mirror{
	"official": {
		Name:            "official",
		VersionManifest: "https://launchermeta.mojang.com/",
		Libraries:       "https://libraries.minecraft.net/",
		Assets:          "https://resources.download.minecraft.net/",
		Client:          "https://launcher.mojang.com/",
		FabricMeta:      "https://meta.fabricmc.net/",
	},
	"bmclapi": {
		Name:            "bmclapi",
		VersionManifest: "https://bmclapi2.bangbang93.com/",
		Libraries:       "https://bmclapi2.bangbang93.com/maven/",
		Assets:          "https://bmclapi2.bangbang93.com/assets/",
		Client:          "https://bmclapi2.bangbang93.com/",
		FabricMeta:      "https://bmclapi2.bangbang93.com/fabric-meta/",
	},
}

// MirrorByName looks up a built-in mirror. An empty name selects "official".
func MirrorByName(name string) (Mirror, error) {
	if name == "" {
		name = "official"
	}
	m, ok := mirrors[name]
	if !ok {
		return Mirror{}, zerr.With(ErrUnknownMirror, "mirror", name)
	}
	return m, nil
}

var urlDomain = regexp.MustCompile(`^https://[^/]+/`)

// RewriteURL swaps the scheme-and-host prefix of a canonical URL for the
// given mirror base. URLs that do not look canonical are returned unchanged.
func RewriteURL(canonical, base string) string {
	if base == "" || !urlDomain.MatchString(canonical) {
		return canonical
	}
	return urlDomain.ReplaceAllString(canonical, base)
}

// SourceList orders download sources by mirror preference: the mirrored URL
// first, then the canonical one. Identical URLs collapse to a single entry.
func SourceList(canonical, base string) []string {
	mirrored := RewriteURL(canonical, base)
	if mirrored == canonical {
		return []string{canonical}
	}
	return []string{mirrored, canonical}
}
