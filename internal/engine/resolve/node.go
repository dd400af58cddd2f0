package resolve

import (
	"context"

	"github.com/funny233-github/mcpack/internal/adapters/fabric"
	"github.com/funny233-github/mcpack/internal/adapters/modrinth"
	"github.com/funny233-github/mcpack/internal/adapters/mojang"
	"github.com/grindlemire/graft"
)

// Node IDs for the resolver Graft nodes.
const (
	VersionNodeID graft.ID = "engine.version_resolver"
	ModNodeID     graft.ID = "engine.mod_resolver"
)

func init() {
	graft.Register(graft.Node[*VersionResolver]{
		ID:        VersionNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{mojang.NodeID, fabric.NodeID},
		Run: func(ctx context.Context) (*VersionResolver, error) {
			rt, err := graft.Dep[*mojang.Client](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[*fabric.Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewVersionResolver(rt, loader), nil
		},
	})

	graft.Register(graft.Node[*ModResolver]{
		ID:        ModNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{modrinth.NodeID},
		Run: func(ctx context.Context) (*ModResolver, error) {
			registry, err := graft.Dep[*modrinth.Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewModResolver(registry), nil
		},
	})
}
