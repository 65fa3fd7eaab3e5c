// Package reload translates source file changes into invalidations of the
// corresponding live modules in the host's module graph.
package reload

import (
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/registry"
)

// Bridge connects file change notifications to the host's hot reload
// machinery. It never compiles anything itself: invalidation only marks
// the module, and the next load for its identity recompiles lazily.
type Bridge struct {
	registry *registry.Registry
	logger   ports.Logger
}

// New creates a Bridge.
func New(reg *registry.Registry, logger ports.Logger) *Bridge {
	return &Bridge{
		registry: reg,
		logger:   logger,
	}
}

// OnSourceChanged maps changedPath to its compiled module and, when that
// module is live in graph, invalidates it together with its dependents and
// appends its id to pending. The returned slice is the updated pending
// list. Untracked paths and modules the graph never loaded leave the list
// untouched.
func (b *Bridge) OnSourceChanged(changedPath string, graph ports.ModuleGraph, pending []string) []string {
	rec, ok := b.registry.BySource(changedPath)
	if !ok {
		return pending
	}

	id := rec.OutputID.String()
	if graph == nil || !graph.Lookup(id) {
		b.logger.Debug("changed module not in graph, nothing to invalidate", "source", changedPath)
		return pending
	}

	graph.Invalidate(id)
	b.logger.Debug("invalidated module", "source", changedPath, "output_id", id)
	return append(pending, id)
}
