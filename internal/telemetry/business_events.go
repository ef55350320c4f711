package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BusinessEvents provides helper methods for tracing domain-specific operations.
// These are higher-level events beyond HTTP/DB/Cache tracing (e.g., "snapshot
// was computed", "content was synced to another platform").
type BusinessEvents struct {
	tracer trace.Tracer
}

// NewBusinessEvents creates a new business events tracer
func NewBusinessEvents() *BusinessEvents {
	return &BusinessEvents{
		tracer: otel.Tracer("business-events"),
	}
}

// ============================================================================
// ANALYTICS OPERATIONS
// ============================================================================

// TraceComputeSnapshot creates a span for analytics snapshot computation
func (be *BusinessEvents) TraceComputeSnapshot(ctx context.Context, userID, periodType string) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "analytics.compute_snapshot",
		trace.WithAttributes(
			attribute.String("analytics.user_id", userID),
			attribute.String("analytics.period_type", periodType),
		),
	)
}

// TraceComputeProgress creates a span for progress report computation
func (be *BusinessEvents) TraceComputeProgress(ctx context.Context, userID string) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "progress.compute",
		trace.WithAttributes(
			attribute.String("progress.user_id", userID),
		),
	)
}

// ============================================================================
// CROSS-PLATFORM OPERATIONS
// ============================================================================

// TraceContentSync creates a span for a cross-platform sync request
func (be *BusinessEvents) TraceContentSync(ctx context.Context, contentID string, targetCount int) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "content.sync",
		trace.WithAttributes(
			attribute.String("sync.content_id", contentID),
			attribute.Int("sync.target_count", targetCount),
		),
	)
}

// TraceContentAdapt creates a span for a single content adaptation
func (be *BusinessEvents) TraceContentAdapt(ctx context.Context, source, target string) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "content.adapt",
		trace.WithAttributes(
			attribute.String("adapt.source_platform", source),
			attribute.String("adapt.target_platform", target),
		),
	)
}

// ============================================================================
// EXPORT OPERATIONS
// ============================================================================

// TraceExport creates a span for an analytics export
func (be *BusinessEvents) TraceExport(ctx context.Context, userID, format string) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "analytics.export",
		trace.WithAttributes(
			attribute.String("export.user_id", userID),
			attribute.String("export.format", format),
		),
	)
}

// ============================================================================
// SPAN COMPLETION HELPERS
// ============================================================================

// EndSpanOK marks the span successful and ends it
func EndSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
	span.End()
}

// EndSpanError records the error on the span and ends it
func EndSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
