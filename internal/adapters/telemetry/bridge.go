package telemetry

import (
	"context"
	"errors"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Bridge is an sdktrace.SpanProcessor that forwards compile span
// lifecycles to a Reporter.
type Bridge struct {
	reporter ports.Reporter
}

// NewBridge wraps reporter in a span processor.
func NewBridge(reporter ports.Reporter) *Bridge {
	return &Bridge{reporter: reporter}
}

// OnStart reports a compile start for every valid span.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.reporter == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.reporter.OnCompileStart(sc.SpanID().String(), parentSpanID(parent), s.Name(), s.StartTime())
}

// parentSpanID extracts the enclosing span's ID, or empty at the root.
func parentSpanID(parent context.Context) string {
	sc := trace.SpanFromContext(parent).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

// OnEnd reports the compile outcome, converting span status and the
// cached attribute back into reporter arguments.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.reporter == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.reporter.OnCompileDone(sc.SpanID().String(), s.EndTime(), spanError(s), wasCached(s))
}

func spanError(s sdktrace.ReadOnlySpan) error {
	if s.Status().Code != codes.Error {
		return nil
	}

	desc := s.Status().Description
	if desc == "" {
		desc = "compile failed"
	}
	return errors.New(desc)
}

func wasCached(s sdktrace.ReadOnlySpan) bool {
	for _, attr := range s.Attributes() {
		if attr.Key == domain.SpanAttrCached && attr.Value.Type() == attribute.BOOL {
			return attr.Value.AsBool()
		}
	}
	return false
}

// ForceFlush is a no-op; events are forwarded synchronously.
func (b *Bridge) ForceFlush(_ context.Context) error { return nil }

// Shutdown is a no-op; the bridge holds no resources.
func (b *Bridge) Shutdown(_ context.Context) error { return nil }
