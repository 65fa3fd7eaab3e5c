package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/lumenlang/lumen/internal/adapters/telemetry"
	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/mock/gomock"
)

// The full reporting path: tracer spans flow through the span processor
// bridge into the reporter, with the cached flag read back off the span.
func TestTracerBridgeReporter_CachedLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := mocks.NewMockReporter(ctrl)
	paths := []string{"src/app.lum"}

	mockReporter.EXPECT().OnPlan(paths).Times(1)
	mockReporter.EXPECT().OnCompileStart(gomock.Any(), gomock.Any(), "src/app.lum", gomock.Any()).Times(1)
	mockReporter.EXPECT().OnCompileDone(gomock.Any(), gomock.Any(), gomock.Nil(), true).Times(1)

	bridge := telemetry.NewBridge(mockReporter)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("lumen-test").WithReporter(mockReporter)

	ctx := context.Background()
	tracer.EmitPlan(ctx, paths)

	_, span := tracer.Start(ctx, "src/app.lum")
	span.SetAttribute(domain.SpanAttrCached, true)
	span.End()
}

func TestTracerBridgeReporter_FailedCompile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := mocks.NewMockReporter(ctrl)
	mockReporter.EXPECT().OnCompileStart(gomock.Any(), gomock.Any(), "src/broken.lum", gomock.Any()).Times(1)
	mockReporter.EXPECT().
		OnCompileDone(gomock.Any(), gomock.Any(), gomock.Any(), false).
		Do(func(_ string, _ time.Time, err error, _ bool) {
			assert.EqualError(t, err, "compilation failed")
		}).
		Times(1)

	bridge := telemetry.NewBridge(mockReporter)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("lumen-test")

	_, span := tracer.Start(context.Background(), "src/broken.lum")
	span.RecordError(domain.ErrCompileFailed)
	span.End()
}
