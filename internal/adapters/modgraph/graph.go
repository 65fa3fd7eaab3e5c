// Package modgraph provides an in-process module graph for hosts that do
// not maintain one of their own.
package modgraph

import (
	"errors"
	"slices"
	"sync"

	graphlib "github.com/dominikbraun/graph"
	"github.com/lumenlang/lumen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleGraph = (*Graph)(nil)

// Graph tracks loaded modules and the import edges between them. Edges
// point from importer to imported, so the dependents of a module are the
// sources of its incoming edges. Safe for concurrent use.
type Graph struct {
	mu      sync.RWMutex
	modules graphlib.Graph[string, string]
	live    map[string]bool
}

// New creates an empty module graph.
func New() *Graph {
	return &Graph{
		modules: graphlib.New(graphlib.StringHash, graphlib.Directed()),
		live:    make(map[string]bool),
	}
}

// Track records the module with the given id as loaded. Tracking an id
// that is already loaded is a no-op.
func (g *Graph) Track(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.modules.AddVertex(id); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return
	}
	g.live[id] = true
}

// Connect records that the module importerID imports the module importedID.
// Missing modules are added to the graph but not marked loaded; Track is
// the only way a module becomes visible to Lookup. Recording an edge that
// already exists is a no-op. Import cycles are legal.
func (g *Graph) Connect(importerID, importedID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range []string{importerID, importedID} {
		if err := g.modules.AddVertex(id); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return zerr.With(zerr.Wrap(err, "failed to add module vertex"), "id", id)
		}
	}

	if err := g.modules.AddEdge(importerID, importedID); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		wrapped := zerr.With(zerr.Wrap(err, "failed to record import edge"), "importer", importerID)
		return zerr.With(wrapped, "imported", importedID)
	}
	return nil
}

// Lookup reports whether the module with the given id is loaded and has not
// been invalidated since.
func (g *Graph) Lookup(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.live[id]
}

// Invalidate marks the module with the given id stale together with every
// module that transitively imports it. Edges are kept: they describe the
// last loaded state and are re-recorded when the modules reload. Unknown
// ids are a no-op.
func (g *Graph) Invalidate(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.modules.Vertex(id); err != nil {
		return
	}
	delete(g.live, id)
	for _, dependent := range g.dependents(id) {
		delete(g.live, dependent)
	}
}

// Dependents returns the sorted ids of every module that transitively
// imports the module with the given id. Unknown ids return nil.
func (g *Graph) Dependents(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, err := g.modules.Vertex(id); err != nil {
		return nil
	}
	dependents := g.dependents(id)
	slices.Sort(dependents)
	return dependents
}

// dependents walks incoming edges breadth-first from id. The visited set
// keeps import cycles from looping. The caller holds mu.
func (g *Graph) dependents(id string) []string {
	predecessors, err := g.modules.PredecessorMap()
	if err != nil {
		return nil
	}

	var found []string
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for importer := range predecessors[current] {
			if seen[importer] {
				continue
			}
			seen[importer] = true
			found = append(found, importer)
			queue = append(queue, importer)
		}
	}
	return found
}
