package lockfile

import (
	"context"
	"errors"
	"os"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/grindlemire/graft"
)

// Node IDs for the instance persistence Graft nodes.
const (
	// NodeID identifies the instance store node.
	NodeID graft.ID = "adapter.instance_store"
	// MirrorNodeID identifies the mirror selection node. It reads the
	// instance manifest in the working directory, falling back to the
	// official mirror when no manifest exists yet.
	MirrorNodeID graft.ID = "adapter.mirror"
)

func init() {
	graft.Register(graft.Node[ports.InstanceStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InstanceStore, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[domain.Mirror]{
		ID:        MirrorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Mirror, error) {
			store, err := graft.Dep[ports.InstanceStore](ctx)
			if err != nil {
				return domain.Mirror{}, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return domain.Mirror{}, err
			}
			manifest, err := store.LoadManifest(cwd)
			if errors.Is(err, domain.ErrManifestNotFound) {
				return domain.MirrorByName("")
			}
			if err != nil {
				return domain.Mirror{}, err
			}
			return domain.MirrorByName(manifest.Mirror)
		},
	})
}
