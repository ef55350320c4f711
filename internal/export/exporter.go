// Package export assembles analytics snapshots into downloadable
// artifacts. JSON and CSV are serialized in-process; PDF and Excel
// rendering is delegated to an external renderer collaborator.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/creatorpulse/backend/internal/analytics"
	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/creatorpulse/backend/internal/telemetry"
)

// Format is a supported export serialization
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// Valid reports whether f is a supported export format.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatPDF, FormatExcel:
		return true
	}
	return false
}

// ContentType returns the MIME type served for this format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Renderer is the external collaborator that turns an assembled payload
// into binary document formats.
type Renderer interface {
	RenderPDF(ctx context.Context, payload map[string]any) ([]byte, error)
	RenderExcel(ctx context.Context, payload map[string]any) ([]byte, error)
}

// Exporter assembles export payloads from freshly computed snapshots
type Exporter struct {
	aggregator *analytics.Aggregator
	renderer   Renderer // nil when no document renderer is configured
	events     *telemetry.BusinessEvents
}

// NewExporter creates an exporter. renderer may be nil; PDF and Excel
// exports then fail with SERVICE_UNAVAILABLE.
func NewExporter(aggregator *analytics.Aggregator, renderer Renderer) *Exporter {
	return &Exporter{
		aggregator: aggregator,
		renderer:   renderer,
		events:     telemetry.NewBusinessEvents(),
	}
}

// defaultSections is the full payload when the caller doesn't narrow it
var defaultSections = []string{
	"content", "platforms", "audience", "engagement",
	"growth", "trends", "recommendations", "competitor",
}

// Export computes the snapshot for (user, period) and serializes the
// requested sections.
func (e *Exporter) Export(ctx context.Context, userID string, period models.Period, format Format, sections []string) ([]byte, error) {
	if !format.Valid() {
		return nil, apperrors.ValidationError("format", fmt.Sprintf("unsupported export format %q", format))
	}

	ctx, span := e.events.TraceExport(ctx, userID, string(format))
	data, err := e.export(ctx, userID, period, format, sections)
	if err != nil {
		telemetry.EndSpanError(span, err)
		return nil, err
	}
	telemetry.EndSpanOK(span)
	return data, nil
}

func (e *Exporter) export(ctx context.Context, userID string, period models.Period, format Format, sections []string) ([]byte, error) {
	snapshot, err := e.aggregator.ComputeAnalytics(ctx, userID, period, analytics.Filters{})
	if err != nil {
		return nil, err
	}

	payload := assemblePayload(snapshot, sections)

	switch format {
	case FormatJSON:
		return json.MarshalIndent(payload, "", "  ")
	case FormatCSV:
		return renderCSV(snapshot, payload)
	case FormatPDF:
		if e.renderer == nil {
			return nil, apperrors.ServiceUnavailable("document renderer")
		}
		return e.renderer.RenderPDF(ctx, payload)
	case FormatExcel:
		if e.renderer == nil {
			return nil, apperrors.ServiceUnavailable("document renderer")
		}
		return e.renderer.RenderExcel(ctx, payload)
	}

	return nil, apperrors.ValidationError("format", fmt.Sprintf("unsupported export format %q", format))
}

// assemblePayload filters the snapshot down to the requested sections.
func assemblePayload(snapshot *models.AnalyticsSnapshot, sections []string) map[string]any {
	if len(sections) == 0 {
		sections = defaultSections
	}

	payload := map[string]any{
		"user_id":      snapshot.UserID,
		"period_start": snapshot.PeriodStart,
		"period_end":   snapshot.PeriodEnd,
		"period_type":  snapshot.PeriodType,
	}

	for _, section := range sections {
		switch section {
		case "content":
			payload["content"] = snapshot.Content
		case "platforms":
			payload["platforms"] = snapshot.Platforms
		case "audience":
			payload["audience"] = snapshot.Audience
		case "engagement":
			payload["engagement"] = snapshot.Engagement
		case "growth":
			payload["growth"] = snapshot.Growth
		case "trends":
			payload["trends"] = snapshot.Trends
		case "recommendations":
			payload["recommendations"] = snapshot.Recommendations
		case "competitor":
			if snapshot.Competitor != nil {
				payload["competitor"] = snapshot.Competitor
			}
		}
	}

	return payload
}

// renderCSV flattens the headline metrics into rows. Deep structures
// (growth series, recommendations) stay in the JSON/document formats.
func renderCSV(snapshot *models.AnalyticsSnapshot, payload map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"section", "metric", "value"}); err != nil {
		return nil, err
	}

	rows := [][]string{
		{"period", "start", snapshot.PeriodStart.Format("2006-01-02")},
		{"period", "end", snapshot.PeriodEnd.Format("2006-01-02")},
	}

	if _, ok := payload["content"]; ok {
		rows = append(rows,
			[]string{"content", "total_content", strconv.Itoa(snapshot.Content.TotalContent)},
			[]string{"content", "total_views", strconv.Itoa(snapshot.Content.TotalViews)},
			[]string{"content", "total_engagement", strconv.Itoa(snapshot.Content.TotalEngagement)},
			[]string{"content", "avg_performance_score", formatFloat(snapshot.Content.AvgPerformanceScore)},
			[]string{"content", "publishes_per_week", formatFloat(snapshot.Content.PublishesPerWeek)},
		)
	}

	if _, ok := payload["platforms"]; ok {
		for _, p := range platform.All() {
			stats, ok := snapshot.Platforms[p]
			if !ok {
				continue
			}
			rows = append(rows,
				[]string{p.String(), "content_count", strconv.Itoa(stats.ContentCount)},
				[]string{p.String(), "views", strconv.Itoa(stats.Views)},
				[]string{p.String(), "engagement_rate", formatFloat(stats.EngagementRate)},
			)
		}
	}

	if _, ok := payload["engagement"]; ok {
		rows = append(rows,
			[]string{"engagement", "peak_hour", strconv.Itoa(snapshot.Engagement.PeakHour)},
			[]string{"engagement", "peak_weekday", strconv.Itoa(snapshot.Engagement.PeakWeekday)},
		)
	}

	if _, ok := payload["trends"]; ok {
		for _, trend := range snapshot.Trends {
			rows = append(rows, []string{"trend", trend.Metric, string(trend.Direction)})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
