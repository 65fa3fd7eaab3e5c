package ports

import (
	"context"
	"time"
)

// Reporter receives the build's progress events. Keeping it apart from
// the tracer lets one span stream feed an interactive terminal or plain
// CI logs without the engine knowing which.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Start readies the reporter before the first event.
	Start(ctx context.Context) error

	// Stop ends the reporting session and flushes anything buffered.
	Stop() error

	// OnPlan announces the source files scheduled for compilation, once
	// per build.
	OnPlan(paths []string)

	// OnCompileStart announces one compilation. spanID identifies it
	// until the matching OnCompileDone; parentID names the enclosing
	// span, empty at the root; name is the path being compiled.
	OnCompileStart(spanID, parentID, name string, startTime time.Time)

	// OnCompileDone closes the compilation started under spanID. err is
	// the compile failure, nil on success; cached reports that the
	// artifact was already fresh and no compile ran.
	OnCompileDone(spanID string, endTime time.Time, err error, cached bool)
}
