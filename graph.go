package lumen

import "github.com/lumenlang/lumen/internal/adapters/modgraph"

var _ ModuleGraph = (*Graph)(nil)

// Graph is an in-process module graph for hosts that do not maintain one
// of their own. Edges point from importer to imported; the dependents of
// a module are the modules that transitively import it. Safe for
// concurrent use.
type Graph struct {
	g *modgraph.Graph
}

// NewGraph creates an empty module graph.
func NewGraph() *Graph {
	return &Graph{g: modgraph.New()}
}

// Track records the module with the given id as loaded. Tracking an id
// that is already loaded is a no-op.
func (g *Graph) Track(id string) {
	g.g.Track(id)
}

// Connect records that the module importerID imports the module
// importedID. Missing modules are added to the graph but not marked
// loaded; Track is the only way a module becomes visible to Lookup.
// Import cycles are legal.
func (g *Graph) Connect(importerID, importedID string) error {
	return g.g.Connect(importerID, importedID)
}

// Lookup reports whether the module with the given id is loaded and has
// not been invalidated since.
func (g *Graph) Lookup(id string) bool {
	return g.g.Lookup(id)
}

// Invalidate marks the module with the given id stale together with every
// module that transitively imports it. Edges are kept: they describe the
// last loaded state and are re-recorded when the modules reload. Unknown
// ids are a no-op.
func (g *Graph) Invalidate(id string) {
	g.g.Invalidate(id)
}

// Dependents returns the sorted ids of every module that transitively
// imports the module with the given id. Unknown ids return nil.
func (g *Graph) Dependents(id string) []string {
	return g.g.Dependents(id)
}
