package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks

// Tracer creates spans around compile work and publishes the build plan.
type Tracer interface {
	// Start opens a span named after the unit of work.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan announces the source files scheduled for compilation.
	EmitPlan(ctx context.Context, paths []string)
}

// Span is one traced unit of work. Writes become span log events, which
// lets a compiler's output stream straight into the trace.
type Span interface {
	io.Writer
	// End closes the span.
	End()
	// RecordError marks the span failed.
	RecordError(err error)
	// SetAttribute attaches a key-value pair.
	SetAttribute(key string, value any)
}

// SpanConfig collects the effect of SpanOptions. It has no fields yet;
// it exists so Start can grow options without breaking implementations.
type SpanConfig struct{}

// SpanOption customizes a starting span.
type SpanOption func(*SpanConfig)
