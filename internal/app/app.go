// Package app drives whole-project builds, watch sessions, and cleanup
// on top of the compilation engine.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/lumenlang/lumen/internal/adapters/console"
	"github.com/lumenlang/lumen/internal/adapters/modgraph"
	"github.com/lumenlang/lumen/internal/adapters/shell"
	"github.com/lumenlang/lumen/internal/adapters/telemetry"
	"github.com/lumenlang/lumen/internal/adapters/watcher"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/engine/loader"
	"github.com/lumenlang/lumen/internal/engine/precompile"
	"github.com/lumenlang/lumen/internal/engine/reload"
	"github.com/lumenlang/lumen/internal/engine/resolver"
	"github.com/lumenlang/lumen/internal/registry"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// batchBuffer is the capacity of the debounced rebuild queue.
const batchBuffer = 16

// App exposes the CLI's operations over the engine packages. It plays
// the host role an embedding dev server otherwise would.
type App struct {
	configLoader ports.ConfigLoader
	walker       ports.SourceWalker
	fs           ports.FileSystem
	logger       ports.Logger

	progressOut io.Writer
	newWatcher  func() (ports.Watcher, error)
}

// New wires an App over the given ports. The file watcher is
// constructed lazily per watch session.
func New(
	configLoader ports.ConfigLoader,
	walker ports.SourceWalker,
	fsys ports.FileSystem,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		walker:       walker,
		fs:           fsys,
		logger:       log,
		newWatcher: func() (ports.Watcher, error) {
			w, err := watcher.NewWatcher()
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	}
}

// WithProgressOutput redirects build progress so tests can capture the
// reporter's stream.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progressOut = w
	return a
}

// WithWatcherFactory swaps the file watcher constructor so tests can
// inject a scripted watcher.
func (a *App) WithWatcherFactory(f func() (ports.Watcher, error)) *App {
	a.newWatcher = f
	return a
}

// BuildOptions tune a single Build run.
type BuildOptions struct {
	Jobs       int
	OutputMode string
}

// WatchOptions tune a Watch session.
type WatchOptions struct {
	Jobs       int
	OutputMode string
}

// session is the compilation pipeline wired for one project.
type session struct {
	cfg      *domain.ProjectConfig
	registry *registry.Registry
	resolver *resolver.Resolver
	loader   *loader.Loader
	bridge   *reload.Bridge
	reporter *console.Reporter
	tracer   *telemetry.OTelTracer
	shutdown func(context.Context) error
}

// newSession loads the project configuration and wires the engine around
// the configured external compiler.
func (a *App) newSession(dir, outputMode string) (*session, error) {
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if len(cfg.CompilerCommand) == 0 {
		return nil, domain.ErrCompilerCommandEmpty
	}

	reporter := console.New(a.progressOut, console.ParseMode(outputMode))
	tracer, shutdown := setupTelemetry(reporter)

	reg := registry.New()
	compiler := shell.NewCompiler(cfg.CompilerCommand, cfg.Root, a.logger)

	return &session{
		cfg:      cfg,
		registry: reg,
		resolver: resolver.New(reg, a.fs, a.logger, cfg.Root, cfg.OutDir),
		loader:   loader.New(reg, a.fs, compiler, tracer, a.logger),
		bridge:   reload.New(reg, a.logger),
		reporter: reporter,
		tracer:   tracer,
		shutdown: shutdown,
	}, nil
}

// Build compiles every source file in the project once.
func (a *App) Build(ctx context.Context, dir string, opts BuildOptions) error {
	sess, err := a.newSession(dir, opts.OutputMode)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.shutdown(ctx)
	}()

	sources, err := a.walker.Walk(sess.cfg.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to discover source files")
	}

	if err := sess.reporter.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = sess.reporter.Stop()
	}()

	pre := precompile.New(sess.resolver, sess.loader, sess.tracer, a.logger, opts.Jobs)
	return pre.Run(ctx, sources)
}

// Watch compiles the project, then keeps artifacts in sync with source
// changes until ctx is canceled.
func (a *App) Watch(ctx context.Context, dir string, opts WatchOptions) error {
	sess, err := a.newSession(dir, opts.OutputMode)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.shutdown(ctx)
	}()

	sources, err := a.walker.Walk(sess.cfg.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to discover source files")
	}

	if err := sess.reporter.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = sess.reporter.Stop()
	}()

	// Initial build. A failed file does not stop the session: it stays
	// stale and recompiles when it changes again.
	pre := precompile.New(sess.resolver, sess.loader, sess.tracer, a.logger, opts.Jobs)
	if err := pre.Run(ctx, sources); err != nil {
		a.logger.Debug("initial build failed", "error", err.Error())
	}

	// The CLI acts as the host: every module that compiled is live in the
	// graph, and fingerprints are primed so events that do not change
	// content are dropped.
	graph := modgraph.New()
	prints := watcher.NewFingerprints()
	for _, src := range sources {
		prints.Changed(src)
		rec, ok := sess.registry.BySource(src)
		if !ok || rec.NeverCompiled() {
			continue
		}
		graph.Track(rec.OutputID.String())
	}

	w, err := a.newWatcher()
	if err != nil {
		return errors.Join(domain.ErrWatcherStartFailed, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if err := w.Start(gctx, sess.cfg.Root); err != nil {
		return errors.Join(domain.ErrWatcherStartFailed, err)
	}
	defer func() {
		_ = w.Stop()
	}()

	batches := make(chan []string, batchBuffer)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-gctx.Done():
		}
	})

	// Event pump. The loop ends when the watcher shuts down on context
	// cancellation.
	g.Go(func() error {
		for event := range w.Events() {
			if filepath.Ext(event.Path) != domain.SourceExt {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Reload worker: apply debounced batches until shutdown.
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-batches:
				a.reloadChanged(gctx, sess, graph, prints, paths)
			}
		}
	})

	a.logger.Info("watching for changes")
	return g.Wait()
}

// reloadChanged maps one debounced batch of file events onto module
// invalidations and reloads the modules that are still on disk.
func (a *App) reloadChanged(ctx context.Context, sess *session, graph *modgraph.Graph, prints *watcher.Fingerprints, paths []string) {
	slices.Sort(paths)

	var pending []string
	for _, path := range paths {
		if !prints.Changed(path) {
			continue
		}

		tracked := len(pending)
		pending = sess.bridge.OnSourceChanged(path, graph, pending)

		if _, err := a.fs.Stat(path); err != nil {
			// Source removed: the invalidation stands, nothing to reload.
			pending = pending[:tracked]
			continue
		}

		if len(pending) == tracked {
			// Not live in the graph: created while watching, or its last
			// reload failed. Resolving (re)registers it for the load below.
			if id, ok := sess.resolver.Resolve(path, "", resolver.Options{}); ok {
				pending = append(pending, id)
			}
		}
	}

	for _, id := range pending {
		if _, err := sess.loader.Load(ctx, id); err != nil {
			a.logger.Error(err)
			continue
		}
		graph.Track(id)
	}
}

// Clean removes the project's compiled output directory.
func (a *App) Clean(_ context.Context, dir string) error {
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	a.logger.Info("removing " + cfg.OutDir)
	if err := os.RemoveAll(cfg.OutDir); err != nil {
		return zerr.Wrap(err, "failed to remove output directory")
	}
	return nil
}

// setupTelemetry wires the reporter into the global OTel SDK so compile
// spans stream to the console as they start and finish. The returned
// function shuts the provider down.
func setupTelemetry(reporter ports.Reporter) (*telemetry.OTelTracer, func(context.Context) error) {
	bridge := telemetry.NewBridge(reporter)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)

	tracer := telemetry.NewOTelTracer("lumen").WithReporter(reporter)
	return tracer, tp.Shutdown
}
