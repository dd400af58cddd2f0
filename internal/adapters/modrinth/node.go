package modrinth

import (
	"context"

	"github.com/funny233-github/mcpack/internal/adapters/httpfetch"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the mod registry Graft node.
const NodeID graft.ID = "adapter.mod_registry"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpfetch.NodeID},
		Run: func(ctx context.Context) (*Client, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(fetcher), nil
		},
	})
}
