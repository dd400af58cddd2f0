package fabric

import (
	"context"

	"github.com/funny233-github/mcpack/internal/adapters/httpfetch"
	"github.com/funny233-github/mcpack/internal/adapters/lockfile"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the loader registry Graft node.
const NodeID graft.ID = "adapter.loader_registry"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpfetch.NodeID, lockfile.MirrorNodeID},
		Run: func(ctx context.Context) (*Client, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			mirror, err := graft.Dep[domain.Mirror](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(fetcher, mirror), nil
		},
	})
}
