package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// ModResolver computes the transitive closure of the manifest's declared
// mods against the mod registry.
type ModResolver struct {
	registry ports.ModRegistry
}

// NewModResolver creates a mod resolver.
func NewModResolver(registry ports.ModRegistry) *ModResolver {
	return &ModResolver{registry: registry}
}

// request is one pending requirement on the work queue, with the chain of
// mod names that led to it.
type request struct {
	name    string
	version string
	chain   []string
}

// resolution is the committed choice for one mod name.
type resolution struct {
	name       string
	version    domain.ModVersion
	exact      bool
	declared   bool
	chain      []string
	requiredBy map[string]bool
	optional   map[string]bool
}

// Resolve walks the declared mods and their required dependencies, pinning
// one version per mod name. pinned maps still-declared mod names to their
// previously locked versions; pass nil to float every unconstrained mod to
// its latest compatible version.
func (r *ModResolver) Resolve(ctx context.Context, m *domain.Manifest, pinned map[string]string) ([]domain.LockEntry, error) {
	resolved := make(map[string]*resolution)

	var queue []request
	for _, mod := range m.Mods {
		queue = append(queue, request{name: mod.Name, version: mod.Version})
	}

	// Registry responses are cached per pass so a mod referenced along many
	// paths is fetched once.
	versionCache := make(map[string][]domain.ModVersion)

	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]

		for _, ancestor := range req.chain {
			if strings.EqualFold(ancestor, req.name) {
				return nil, zerr.With(domain.ErrDependencyCycle, "chain", chainString(append(req.chain, req.name)))
			}
		}

		key := strings.ToLower(req.name)
		want := req.version
		if want == "" && len(req.chain) == 0 {
			want = pinned[key]
		}

		if prior, ok := resolved[key]; ok {
			if err := mergeRequirement(prior, req, want); err != nil {
				return nil, err
			}
			continue
		}

		versions, ok := versionCache[key]
		if !ok {
			var err error
			versions, err = r.registry.ProjectVersions(ctx, req.name)
			if err != nil {
				return nil, err
			}
			versionCache[key] = versions
		}

		chosen, err := pick(versions, req, want, m)
		if err != nil {
			return nil, err
		}

		res := &resolution{
			name:       req.name,
			version:    chosen,
			exact:      want != "",
			declared:   len(req.chain) == 0,
			chain:      req.chain,
			requiredBy: map[string]bool{},
			optional:   map[string]bool{},
		}
		if len(req.chain) > 0 {
			res.requiredBy[req.chain[len(req.chain)-1]] = true
		}
		resolved[key] = res

		for _, dep := range chosen.Dependencies {
			if dep.Name == "" {
				continue
			}
			switch dep.Kind {
			case domain.DependencyOptional:
				res.optional[dep.Name] = true
			case domain.DependencyIncompatible:
				if other, ok := resolved[strings.ToLower(dep.Name)]; ok {
					conflict := zerr.With(domain.ErrDependencyConflict, "mod", dep.Name)
					conflict = zerr.With(conflict, "incompatible_with", chainString(append(req.chain, req.name)))
					return nil, zerr.With(conflict, "required_by", chainString(append(other.chain, other.name)))
				}
			default:
				queue = append(queue, request{
					name:    dep.Name,
					version: dep.Version,
					chain:   append(append([]string{}, req.chain...), req.name),
				})
			}
		}
	}

	// Late incompatibility: a mod resolved before its incompatible peer.
	for _, res := range resolved {
		for _, dep := range res.version.Dependencies {
			if dep.Kind != domain.DependencyIncompatible {
				continue
			}
			if other, ok := resolved[strings.ToLower(dep.Name)]; ok {
				conflict := zerr.With(domain.ErrDependencyConflict, "mod", other.name)
				conflict = zerr.With(conflict, "incompatible_with", chainString(append(res.chain, res.name)))
				return nil, zerr.With(conflict, "required_by", chainString(append(other.chain, other.name)))
			}
		}
	}

	return entries(resolved)
}

// matches reports whether an exact constraint names the version, by number
// or by registry version id.
func matches(v domain.ModVersion, want string) bool {
	return v.VersionNumber == want || (v.ID != "" && v.ID == want)
}

// mergeRequirement reconciles a new requirement against an already-chosen
// version of the same mod.
func mergeRequirement(prior *resolution, req request, want string) error {
	if want != "" && !matches(prior.version, want) {
		conflict := zerr.With(domain.ErrDependencyConflict, "mod", prior.name)
		conflict = zerr.With(conflict, "wanted", want+" via "+chainString(append(req.chain, req.name)))
		return zerr.With(conflict, "chosen", prior.version.VersionNumber+" via "+chainString(append(prior.chain, prior.name)))
	}
	if len(req.chain) > 0 {
		prior.requiredBy[req.chain[len(req.chain)-1]] = true
	} else {
		prior.declared = true
	}
	return nil
}

// pick selects the version satisfying the requirement: the exact version
// when one is demanded, else the most recently published compatible one.
func pick(versions []domain.ModVersion, req request, want string, m *domain.Manifest) (domain.ModVersion, error) {
	var best domain.ModVersion
	found := false
	for _, v := range versions {
		if !compatible(v, m) {
			continue
		}
		if want != "" {
			if matches(v, want) {
				return v, nil
			}
			continue
		}
		if !found || v.Published.After(best.Published) {
			best = v
			found = true
		}
	}
	if !found {
		err := zerr.With(domain.ErrNoCompatibleVersion, "mod", req.name)
		err = zerr.With(err, "runtime", m.RuntimeVersion)
		if want != "" {
			err = zerr.With(err, "wanted", want)
		}
		if len(req.chain) > 0 {
			err = zerr.With(err, "required_by", chainString(append(req.chain, req.name)))
		}
		return domain.ModVersion{}, err
	}
	return best, nil
}

// compatible reports whether a published version targets the manifest's
// runtime version and loader.
func compatible(v domain.ModVersion, m *domain.Manifest) bool {
	if !contains(v.GameVersions, m.RuntimeVersion) {
		return false
	}
	if m.LoaderKind == domain.LoaderFabric {
		return contains(v.Loaders, string(domain.LoaderFabric))
	}
	return true
}

// entries converts resolutions into lock entries, deterministically ordered
// by name.
func entries(resolved map[string]*resolution) ([]domain.LockEntry, error) {
	keys := make([]string, 0, len(resolved))
	for k := range resolved {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.LockEntry, 0, len(resolved))
	for _, k := range keys {
		res := resolved[k]
		file, ok := res.version.PrimaryFile()
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrModNotFound, "version has no files"), "mod", res.name)
		}
		// The registry controls the filename; one carrying separators or
		// traversal would escape the mods directory.
		if !domain.SafeFileName(file.Filename) {
			err := zerr.With(zerr.Wrap(domain.ErrManifestParse, "unsafe mod filename"), "mod", res.name)
			return nil, zerr.With(err, "filename", file.Filename)
		}

		entry := domain.LockEntry{
			Name:    res.name,
			Role:    domain.RoleMod,
			Version: res.version.VersionNumber,
			URLs:    []string{file.URL},
			Hash:    fileHash(file),
			Size:    file.Size,
			Path:    domain.ModPath(file.Filename),
		}
		if !res.declared {
			entry.Role = domain.RoleModDependency
			entry.RequiredBy = setToSlice(res.requiredBy)
		}
		entry.OptionalDeps = setToSlice(res.optional)
		out = append(out, entry)
	}
	return out, nil
}

// fileHash prefers the stronger digest when the registry publishes both.
func fileHash(f domain.ModFile) domain.HashRef {
	if f.SHA512 != "" {
		return domain.HashRef{Algo: "sha512", Hex: f.SHA512}
	}
	return domain.HashRef{Algo: "sha1", Hex: f.SHA1}
}

func chainString(chain []string) string {
	return strings.Join(chain, " -> ")
}

func setToSlice(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
