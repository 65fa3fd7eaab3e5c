// Package loader keeps compiled artifacts fresh and serves their content.
package loader

import (
	"context"
	"errors"
	"time"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/registry"
	"golang.org/x/sync/singleflight"
)

// Loader answers load requests for compiled module identities. It detects
// staleness against the source file's modification time, recompiles
// through the external compiler when needed, persists the artifact, and
// returns the persisted content.
type Loader struct {
	registry *registry.Registry
	fs       ports.FileSystem
	compiler ports.Compiler
	tracer   ports.Tracer
	logger   ports.Logger

	// requestGroup serializes work per source path so concurrent loads
	// racing on the same stale file share one compile and one write.
	requestGroup singleflight.Group
}

// New creates a Loader.
func New(
	reg *registry.Registry,
	fsys ports.FileSystem,
	compiler ports.Compiler,
	tracer ports.Tracer,
	logger ports.Logger,
) *Loader {
	return &Loader{
		registry: reg,
		fs:       fsys,
		compiler: compiler,
		tracer:   tracer,
		logger:   logger,
	}
}

// Load returns the artifact for outputID, compiling first if the source
// changed since the last successful compile. It returns nil, nil when
// outputID is not a tracked compiled module, signaling the caller to fall
// through to its default loader.
func (l *Loader) Load(ctx context.Context, outputID string) (*domain.Artifact, error) {
	rec, ok := l.registry.ByOutput(outputID)
	if !ok {
		return nil, nil
	}
	sourcePath := rec.SourcePath.String()

	// The whole check-compile-write-read sequence runs inside the flight
	// so a second caller arriving mid-compile joins the first's result
	// instead of compiling again.
	result, err, _ := l.requestGroup.Do(sourcePath, func() (any, error) {
		return l.loadFresh(ctx, sourcePath, outputID)
	})
	if err != nil {
		return nil, err
	}
	artifact, _ := result.(*domain.Artifact)
	return artifact, nil
}

func (l *Loader) loadFresh(ctx context.Context, sourcePath, outputID string) (*domain.Artifact, error) {
	ctx, span := l.tracer.Start(ctx, sourcePath)
	defer span.End()
	span.SetAttribute(domain.SpanAttrOutput, outputID)

	rec, _ := l.registry.BySource(sourcePath)

	mtime, err := l.fs.Stat(sourcePath)
	if err != nil {
		err = errors.Join(domain.ErrSourceStatFailed, err)
		span.RecordError(err)
		return nil, err
	}

	stale := rec.NeverCompiled() || mtime.After(rec.LastCompiledAt)
	if !stale {
		// The record says fresh, but the artifact may have been removed
		// out from under us (output directory wiped). Recompile instead
		// of failing every load until the source is touched again.
		if _, statErr := l.fs.Stat(outputID); statErr != nil {
			stale = true
		}
	}

	if stale {
		if err := l.compile(ctx, span, sourcePath, outputID, mtime); err != nil {
			return nil, err
		}
	} else {
		span.SetAttribute(domain.SpanAttrCached, true)
		l.logger.Debug("artifact up to date", "source", sourcePath)
	}

	return l.readArtifact(outputID)
}

// compile runs the external compiler and persists its output. The compile
// stamp advances to the modification time observed before compiling, not
// to the current clock, so an edit racing the compiler marks the record
// stale again.
func (l *Loader) compile(ctx context.Context, span ports.Span, sourcePath, outputID string, observed time.Time) error {
	source, err := l.fs.ReadText(sourcePath)
	if err != nil {
		err = errors.Join(domain.ErrSourceReadFailed, err)
		span.RecordError(err)
		return err
	}

	l.logger.Debug("compiling", "source", sourcePath, "output_id", outputID)
	result, err := l.compiler.Compile(ctx, source, sourcePath)
	if err != nil {
		err = errors.Join(domain.ErrCompileFailed, err)
		span.RecordError(err)
		return err
	}

	if err := l.fs.WriteText(outputID, result.Code); err != nil {
		err = errors.Join(domain.ErrArtifactWriteFailed, err)
		span.RecordError(err)
		return err
	}

	mapPath := outputID + domain.SourceMapExt
	if result.SourceMap != "" {
		if err := l.fs.WriteText(mapPath, result.SourceMap); err != nil {
			err = errors.Join(domain.ErrArtifactWriteFailed, err)
			span.RecordError(err)
			return err
		}
	} else if err := l.fs.Remove(mapPath); err != nil {
		err = errors.Join(domain.ErrArtifactWriteFailed, err)
		span.RecordError(err)
		return err
	}

	l.registry.MarkCompiled(sourcePath, observed)
	return nil
}

func (l *Loader) readArtifact(outputID string) (*domain.Artifact, error) {
	code, err := l.fs.ReadText(outputID)
	if err != nil {
		return nil, errors.Join(domain.ErrArtifactReadFailed, err)
	}

	artifact := &domain.Artifact{Code: code}

	mapPath := outputID + domain.SourceMapExt
	if _, statErr := l.fs.Stat(mapPath); statErr == nil {
		sourceMap, readErr := l.fs.ReadText(mapPath)
		if readErr != nil {
			return nil, errors.Join(domain.ErrArtifactReadFailed, readErr)
		}
		artifact.SourceMap = sourceMap
	}

	return artifact, nil
}
