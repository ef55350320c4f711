package analytics

import (
	"github.com/creatorpulse/backend/internal/models"
)

// Competitive field baselines per benchmark metric. Fixed reference
// values standing in for a real competitor-ingestion pipeline.
type fieldBaseline struct {
	competitorAvg float64
	topPerformer  float64
}

var competitorBaselines = map[string]fieldBaseline{
	"follower_growth":   {competitorAvg: 250, topPerformer: 2000},  // new followers / period
	"engagement_rate":   {competitorAvg: 0.035, topPerformer: 0.12},
	"content_frequency": {competitorAvg: 3.5, topPerformer: 7},     // publishes / week
	"content_quality":   {competitorAvg: 55, topPerformer: 88},     // performance score
}

// competitorTrendThreshold separates improving from declining against the
// field average. A fixed threshold comparison - a simplification, not a
// statistical guarantee.
const competitorTrendThreshold = 0.9

// analyzeCompetitors builds the paid-tier benchmark block from the
// already-computed snapshot categories.
func analyzeCompetitors(user *models.User, snapshot *models.AnalyticsSnapshot) models.CompetitorAnalysis {
	engagementRate := 0.0
	if snapshot.Content.TotalViews > 0 {
		engagementRate = float64(snapshot.Content.TotalEngagement) / float64(snapshot.Content.TotalViews)
	}

	yours := map[string]float64{
		"follower_growth":   float64(user.FollowerCount) * 0.02, // estimated period delta
		"engagement_rate":   engagementRate,
		"content_frequency": snapshot.Content.PublishesPerWeek,
		"content_quality":   snapshot.Content.AvgPerformanceScore,
	}

	analysis := models.CompetitorAnalysis{
		Benchmarks: make(map[string]models.Benchmark, len(competitorBaselines)),
	}

	aboveAvg := 0
	for metric, baseline := range competitorBaselines {
		value := yours[metric]
		analysis.Benchmarks[metric] = models.Benchmark{
			Yours:         value,
			CompetitorAvg: baseline.competitorAvg,
			TopPerformer:  baseline.topPerformer,
			Percentile:    percentileOf(value, baseline),
		}
		if value >= baseline.competitorAvg*competitorTrendThreshold {
			aboveAvg++
		}
	}

	switch {
	case aboveAvg >= 3:
		analysis.Trend = models.TrendImproving
	case aboveAvg <= 1:
		analysis.Trend = models.TrendDeclining
	default:
		analysis.Trend = models.TrendStable
	}

	return analysis
}

// percentileOf places a value in the field linearly against the top
// performer, capped to [1, 99].
func percentileOf(value float64, baseline fieldBaseline) float64 {
	if baseline.topPerformer <= 0 {
		return 50
	}
	percentile := value / baseline.topPerformer * 100
	if percentile < 1 {
		percentile = 1
	}
	if percentile > 99 {
		percentile = 99
	}
	return percentile
}
