package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lumenlang/lumen/internal/adapters/config" //nolint:depguard // Wired in app layer
	"github.com/lumenlang/lumen/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"github.com/lumenlang/lumen/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"github.com/lumenlang/lumen/internal/core/ports"
)

const (
	// AppNodeID identifies the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID identifies the CLI-facing components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LoaderNodeID,
			fs.FileSystemNodeID,
			fs.WalkerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[ports.SourceWalker](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, walker, fsys, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log), nil
}
