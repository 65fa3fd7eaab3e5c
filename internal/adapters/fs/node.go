package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lumenlang/lumen/internal/core/ports"
)

const (
	// FileSystemNodeID identifies the file system Graft node.
	FileSystemNodeID graft.ID = "adapter.fs"
	// WalkerNodeID identifies the source walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run:       runFileSystemNode,
	})

	graft.Register(graft.Node[ports.SourceWalker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run:       runWalkerNode,
	})
}

func runFileSystemNode(context.Context) (ports.FileSystem, error) {
	return New(), nil
}

func runWalkerNode(context.Context) (ports.SourceWalker, error) {
	return NewWalker(), nil
}
