package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// withSpanRecorder installs an in-memory tracer provider for the duration
// of the test and returns the recorder collecting ended spans.
func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestTraceComputeSnapshotAttributes(t *testing.T) {
	recorder := withSpanRecorder(t)
	events := NewBusinessEvents()

	ctx, span := events.TraceComputeSnapshot(context.Background(), "user-1", "week")
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	EndSpanOK(span)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "analytics.compute_snapshot", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("analytics.user_id", "user-1"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("analytics.period_type", "week"))
}

func TestTraceSpanNamesPerOperation(t *testing.T) {
	recorder := withSpanRecorder(t)
	events := NewBusinessEvents()
	ctx := context.Background()

	_, span := events.TraceComputeProgress(ctx, "user-1")
	EndSpanOK(span)
	_, span = events.TraceContentSync(ctx, "content-1", 2)
	EndSpanOK(span)
	_, span = events.TraceContentAdapt(ctx, "youtube", "tiktok")
	EndSpanOK(span)
	_, span = events.TraceExport(ctx, "user-1", "csv")
	EndSpanOK(span)

	spans := recorder.Ended()
	require.Len(t, spans, 4)
	assert.Equal(t, "progress.compute", spans[0].Name())
	assert.Equal(t, "content.sync", spans[1].Name())
	assert.Equal(t, "content.adapt", spans[2].Name())
	assert.Equal(t, "analytics.export", spans[3].Name())

	assert.Contains(t, spans[1].Attributes(), attribute.Int("sync.target_count", 2))
	assert.Contains(t, spans[2].Attributes(), attribute.String("adapt.target_platform", "tiktok"))
	assert.Contains(t, spans[3].Attributes(), attribute.String("export.format", "csv"))
}

func TestEndSpanErrorRecordsError(t *testing.T) {
	recorder := withSpanRecorder(t)
	events := NewBusinessEvents()

	_, span := events.TraceContentSync(context.Background(), "content-1", 1)
	EndSpanError(span, errors.New("store unreachable"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "store unreachable", spans[0].Status().Description)

	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}
