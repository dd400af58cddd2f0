package download

import (
	"context"

	"github.com/funny233-github/mcpack/internal/adapters/cas"
	"github.com/funny233-github/mcpack/internal/adapters/httpfetch"
	"github.com/funny233-github/mcpack/internal/adapters/logger"
	"github.com/funny233-github/mcpack/internal/adapters/telemetry"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the download engine Graft node.
const NodeID graft.ID = "engine.download"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpfetch.NodeID, cas.NodeID, telemetry.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Engine, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ContentStore](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(fetcher, store, tel, log), nil
		},
	})
}
