// Package precompile compiles a batch of discovered sources up front.
package precompile

import (
	"context"
	"errors"
	"runtime"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/engine/loader"
	"github.com/lumenlang/lumen/internal/engine/resolver"
	"golang.org/x/sync/errgroup"
)

// Precompiler drives the resolve-then-load pipeline over a whole source
// listing, compiling several files concurrently. A failed file never
// stops the batch: the remaining sources still compile and all failures
// come back together.
type Precompiler struct {
	resolver *resolver.Resolver
	loader   *loader.Loader
	tracer   ports.Tracer
	logger   ports.Logger
	jobs     int
}

// New creates a Precompiler running at most jobs compiles concurrently.
// A jobs value below one means one worker per CPU.
func New(res *resolver.Resolver, ldr *loader.Loader, tracer ports.Tracer, logger ports.Logger, jobs int) *Precompiler {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return &Precompiler{
		resolver: res,
		loader:   ldr,
		tracer:   tracer,
		logger:   logger,
		jobs:     jobs,
	}
}

// Run resolves and loads every source path in sources. It returns nil
// when everything compiled, or domain.ErrBuildFailed joined with the
// per-file failures in listing order.
func (p *Precompiler) Run(ctx context.Context, sources []string) error {
	p.tracer.EmitPlan(ctx, sources)

	g := new(errgroup.Group)
	g.SetLimit(p.jobs)

	failures := make([]error, len(sources))
	for i, src := range sources {
		g.Go(func() error {
			outputID, ok := p.resolver.Resolve(src, "", resolver.Options{})
			if !ok {
				p.logger.Debug("source not resolvable, skipping", "path", src)
				return nil
			}
			if _, err := p.loader.Load(ctx, outputID); err != nil {
				failures[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(failures...); err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}
	return nil
}
