package cas

import (
	"context"
	"os"
	"path/filepath"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the content store Graft node.
const NodeID graft.ID = "adapter.content_store"

func init() {
	graft.Register(graft.Node[ports.ContentStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContentStore, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(cwd, filepath.FromSlash(domain.StoreDirName)))
		},
	})
}
