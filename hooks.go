package lumen

import "context"

// Hooks packages a Plugin's operations as standalone functions for hosts
// whose plugin registries take hook functions rather than interfaces.
// All hooks from one bundle share the plugin's session state.
type Hooks struct {
	// Resolve is the resolve hook. discoveryPass marks the host's
	// side-effect-free scan.
	Resolve func(ctx context.Context, specifier, importerID string, discoveryPass bool) (string, bool)

	// Load is the load hook. nil, nil means defer to the host's loader.
	Load func(ctx context.Context, id string) (*LoadResult, error)

	// FileChange is the file-change hook. It returns the updated pending
	// module list.
	FileChange func(changedPath string, graph ModuleGraph, pending []string) []string
}

// Hooks returns the plugin's operations as hook functions. Constructing
// the plugin with New is the startup hook.
func (p *Plugin) Hooks() Hooks {
	return Hooks{
		Resolve: func(ctx context.Context, specifier, importerID string, discoveryPass bool) (string, bool) {
			return p.Resolve(ctx, specifier, importerID, ResolveOptions{DiscoveryPass: discoveryPass})
		},
		Load:       p.Load,
		FileChange: p.OnFileChange,
	}
}
