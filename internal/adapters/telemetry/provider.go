// Package telemetry implements the tracer port on OpenTelemetry and bridges
// span lifecycles to build progress reporting.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumenlang/lumen/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelTracer implements ports.Tracer on an OpenTelemetry tracer.
type OTelTracer struct {
	tracer trace.Tracer

	mu       sync.RWMutex
	reporter ports.Reporter
}

// NewOTelTracer builds a tracer under the given instrumentation name. The
// global tracer provider must be configured first.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{tracer: otel.Tracer(name)}
}

// WithReporter forwards plan announcements to r. Span lifecycle events
// reach the reporter through the span processor bridge instead, which has
// no plan hook of its own.
func (t *OTelTracer) WithReporter(r ports.Reporter) *OTelTracer {
	t.mu.Lock()
	t.reporter = r
	t.mu.Unlock()
	return t
}

func (t *OTelTracer) currentReporter() ports.Reporter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.reporter
}

// Start opens a span named after the unit of work.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OTelSpan{span: span}
}

// EmitPlan records the planned source files on the current span and
// announces them to the reporter.
func (t *OTelTracer) EmitPlan(ctx context.Context, paths []string) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("paths", paths),
		))
	}

	if r := t.currentReporter(); r != nil {
		r.OnPlan(paths)
	}
}

// OTelSpan adapts trace.Span to ports.Span.
type OTelSpan struct {
	span trace.Span
}

// End finishes the underlying OTel span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err and marks the span status failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute attaches a key-value pair, mapping Go types onto the
// closest OTel attribute type.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(spanAttribute(key, value))
}

func spanAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// Write adds p as a log event, so compiler output streams into the trace.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
