package reconcile

import (
	"context"

	"github.com/funny233-github/mcpack/internal/adapters/lockfile"
	"github.com/funny233-github/mcpack/internal/adapters/logger"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/funny233-github/mcpack/internal/engine/download"
	"github.com/funny233-github/mcpack/internal/engine/materialize"
	"github.com/funny233-github/mcpack/internal/engine/resolve"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconciler"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolve.VersionNodeID,
			resolve.ModNodeID,
			download.NodeID,
			materialize.NodeID,
			lockfile.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			versions, err := graft.Dep[*resolve.VersionResolver](ctx)
			if err != nil {
				return nil, err
			}
			mods, err := graft.Dep[*resolve.ModResolver](ctx)
			if err != nil {
				return nil, err
			}
			engine, err := graft.Dep[*download.Engine](ctx)
			if err != nil {
				return nil, err
			}
			material, err := graft.Dep[*materialize.Materializer](ctx)
			if err != nil {
				return nil, err
			}
			instance, err := graft.Dep[ports.InstanceStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(versions, mods, engine, material, instance, log), nil
		},
	})
}
