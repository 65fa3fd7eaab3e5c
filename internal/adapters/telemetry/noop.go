package telemetry

import (
	"context"

	"github.com/lumenlang/lumen/internal/core/ports"
)

// NoOpTracer discards all spans. It is the default for embedded use,
// where the host owns observability.
type NoOpTracer struct{}

// NewNoOpTracer returns the inert tracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns a span that records nothing.
func (NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

// EmitPlan discards the plan.
func (NoOpTracer) EmitPlan(_ context.Context, _ []string) {}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}

func (noopSpan) Write(p []byte) (int, error) { return len(p), nil }
