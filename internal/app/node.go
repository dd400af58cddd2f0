package app

import (
	"context"
	"os"

	"github.com/funny233-github/mcpack/internal/adapters/lockfile"
	"github.com/funny233-github/mcpack/internal/adapters/logger"
	"github.com/funny233-github/mcpack/internal/adapters/modrinth"
	"github.com/funny233-github/mcpack/internal/adapters/mojang"
	"github.com/funny233-github/mcpack/internal/adapters/telemetry"
	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/funny233-github/mcpack/internal/engine/download"
	"github.com/funny233-github/mcpack/internal/engine/materialize"
	"github.com/funny233-github/mcpack/internal/engine/reconcile"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			lockfile.MirrorNodeID,
			reconcile.NodeID,
			materialize.NodeID,
			download.NodeID,
			mojang.NodeID,
			modrinth.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			instance, err := graft.Dep[ports.InstanceStore](ctx)
			if err != nil {
				return nil, err
			}
			mirror, err := graft.Dep[domain.Mirror](ctx)
			if err != nil {
				return nil, err
			}
			reconciler, err := graft.Dep[*reconcile.Reconciler](ctx)
			if err != nil {
				return nil, err
			}
			material, err := graft.Dep[*materialize.Materializer](ctx)
			if err != nil {
				return nil, err
			}
			engine, err := graft.Dep[*download.Engine](ctx)
			if err != nil {
				return nil, err
			}
			runtime, err := graft.Dep[*mojang.Client](ctx)
			if err != nil {
				return nil, err
			}
			mods, err := graft.Dep[*modrinth.Client](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return New(cwd, mirror, instance, reconciler, material, engine, runtime, mods, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log, Telemetry: tel}, nil
		},
	})
}
