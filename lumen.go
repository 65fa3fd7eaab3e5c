// Package lumen embeds the Lumen compilation pipeline into a host build
// tool. A Plugin resolves import specifiers onto compiled module
// identities, serves compiled content on demand with staleness-checked
// caching, and translates source file changes into hot reload
// invalidations of the host's module graph.
//
// Hosts with typed plugin registries call the Plugin's methods directly;
// hosts that register loosely typed hook functions use Hooks.
package lumen

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/lumenlang/lumen/internal/adapters/fs"
	"github.com/lumenlang/lumen/internal/adapters/logger"
	"github.com/lumenlang/lumen/internal/adapters/telemetry"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/engine/loader"
	"github.com/lumenlang/lumen/internal/engine/reload"
	"github.com/lumenlang/lumen/internal/engine/resolver"
	"github.com/lumenlang/lumen/internal/registry"
	"go.trai.ch/zerr"
)

// CompileResult is what a CompileFunc produces for one source file.
type CompileResult struct {
	// Code is the compiled ES module text.
	Code string
	// SourceMap is the JSON source map, or empty when the compiler emits none.
	SourceMap string
}

// CompileFunc translates Lumen source text into JavaScript. originPath is
// the absolute path of the file the text was read from, for diagnostics
// and source map generation. Implementations must be safe for concurrent
// use: loads are serialized per source file, but distinct files may
// compile concurrently.
type CompileFunc func(ctx context.Context, source, originPath string) (CompileResult, error)

// Config configures a Plugin.
type Config struct {
	// Root is the absolute path of the project root. Required.
	Root string

	// OutDir is the directory compiled modules are written to, relative
	// to Root unless absolute. Empty means .lumen/out.
	OutDir string

	// Compile is the external compiler. Required.
	Compile CompileFunc

	// Logger receives verbose diagnostics. Nil discards them; level
	// filtering belongs to the supplied handler.
	Logger *slog.Logger
}

// ResolveOptions control a single Resolve call.
type ResolveOptions struct {
	// DiscoveryPass marks the host's side-effect-free scan. A discovery
	// pass defers unconditionally: it neither probes the filesystem nor
	// registers anything.
	DiscoveryPass bool
}

// LoadResult is the compiled module content served to the host.
type LoadResult struct {
	// Code is the compiled ES module text.
	Code string
	// SourceMap is the content of the map sidecar, or empty when none exists.
	SourceMap string
}

// ModuleGraph is the handle to the host's live module graph consumed by
// OnFileChange. Lookup reports whether the module with the given id has
// been loaded; Invalidate marks it and its transitive dependents stale.
// Hosts without a graph of their own can use NewGraph.
type ModuleGraph interface {
	Lookup(id string) bool
	Invalidate(id string)
}

// Plugin is one embedded compilation pipeline. Its three operations map
// onto the host's resolve, load, and file-change hooks; constructing it
// with New is the startup hook. All methods are safe for concurrent use.
type Plugin struct {
	resolver *resolver.Resolver
	loader   *loader.Loader
	bridge   *reload.Bridge
}

// New validates cfg and constructs a Plugin. All session state lives in
// the returned value; two Plugins share nothing.
func New(cfg Config) (*Plugin, error) {
	if cfg.Root == "" {
		return nil, domain.ErrProjectRootRequired
	}
	if !filepath.IsAbs(cfg.Root) {
		return nil, zerr.With(domain.ErrProjectRootNotAbsolute, "root", cfg.Root)
	}
	if cfg.Compile == nil {
		return nil, domain.ErrCompilerRequired
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = domain.DefaultOutDir()
	}

	log := logger.FromSlog(cfg.Logger)
	fsys := fs.New()
	reg := registry.New()

	return &Plugin{
		resolver: resolver.New(reg, fsys, log, cfg.Root, outDir),
		loader:   loader.New(reg, fsys, compilerFunc(cfg.Compile), telemetry.NewNoOpTracer(), log),
		bridge:   reload.New(reg, log),
	}, nil
}

// Resolve maps specifier, imported from the module importerID, onto the
// id the host should request it under. The boolean is false when the
// import is not a Lumen concern and the host's default resolution should
// proceed. Resolution never blocks.
func (p *Plugin) Resolve(_ context.Context, specifier, importerID string, opts ResolveOptions) (string, bool) {
	return p.resolver.Resolve(specifier, importerID, resolver.Options{DiscoveryPass: opts.DiscoveryPass})
}

// Load returns the compiled module for id, compiling first when the
// source changed since the last successful compile. It returns nil, nil
// when id is not a compiled module identity, signaling the host to fall
// through to its default loader.
func (p *Plugin) Load(ctx context.Context, id string) (*LoadResult, error) {
	artifact, err := p.loader.Load(ctx, id)
	if err != nil || artifact == nil {
		return nil, err
	}
	return &LoadResult{Code: artifact.Code, SourceMap: artifact.SourceMap}, nil
}

// OnFileChange maps changedPath to its compiled module and, when that
// module is live in graph, invalidates it together with its dependents
// and appends its id to pending. The returned slice is the updated
// pending list. Untracked paths and modules the graph never loaded leave
// the list untouched.
func (p *Plugin) OnFileChange(changedPath string, graph ModuleGraph, pending []string) []string {
	return p.bridge.OnSourceChanged(changedPath, graph, pending)
}

var _ ports.Compiler = (compilerFunc)(nil)

// compilerFunc adapts a CompileFunc to the loader's compiler contract.
type compilerFunc CompileFunc

func (f compilerFunc) Compile(ctx context.Context, source, originPath string) (domain.CompileResult, error) {
	result, err := f(ctx, source, originPath)
	if err != nil {
		return domain.CompileResult{}, err
	}
	return domain.CompileResult{Code: result.Code, SourceMap: result.SourceMap}, nil
}
