package config

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lumenlang/lumen/internal/adapters/logger"
	"github.com/lumenlang/lumen/internal/core/ports"
)

// LoaderNodeID identifies the config loader Graft node.
const LoaderNodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run:       runLoaderNode,
	})
}

func runLoaderNode(ctx context.Context) (ports.ConfigLoader, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return NewLoader(log), nil
}
