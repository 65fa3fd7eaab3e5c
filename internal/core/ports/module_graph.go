package ports

// ModuleGraph defines the interface to the host's live module graph.
//
// The methods use only builtin types so that any host graph exposing the
// same shape satisfies the interface without importing this package.
//
//go:generate mockgen -source=module_graph.go -destination=mocks/mock_module_graph.go -package=mocks
type ModuleGraph interface {
	// Lookup reports whether the module with the given id has been loaded
	// into the graph.
	Lookup(id string) bool

	// Invalidate marks the module with the given id stale so the next
	// request for it reloads. Calling Invalidate for an id that is not in
	// the graph is a no-op.
	Invalidate(id string)
}
