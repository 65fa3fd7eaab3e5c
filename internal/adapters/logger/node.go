package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lumenlang/lumen/internal/core/ports"
)

// NodeID identifies the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run:       runLoggerNode,
	})
}

func runLoggerNode(context.Context) (ports.Logger, error) {
	return New(), nil
}
