package analytics

import (
	"sort"

	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
)

// Fixed heuristic confidence constants for the growth projections.
// Placeholders by product decision, not statistically derived.
const (
	confidence30d  = 0.8
	confidence90d  = 0.6
	confidence365d = 0.4
)

// trendThresholdPct is the fixed half-over-half change that moves a
// metric out of "stable". A threshold comparison, not significance
// testing.
const trendThresholdPct = 10.0

const topContentCount = 3

func computeContentMetrics(items []models.ContentItem, period models.Period) models.ContentMetrics {
	metrics := models.ContentMetrics{
		TotalContent: len(items),
	}

	scoreSum := 0.0
	for _, item := range items {
		metrics.TotalViews += item.Views
		metrics.TotalEngagement += item.EngagementCount
		metrics.TotalShares += item.Shares
		scoreSum += item.PerformanceScore
	}

	if len(items) > 0 {
		metrics.AvgPerformanceScore = scoreSum / float64(len(items))
	}

	weeks := float64(period.Days()) / 7
	if weeks > 0 {
		metrics.PublishesPerWeek = float64(len(items)) / weeks
	}

	ranked := make([]models.ContentItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PerformanceScore > ranked[j].PerformanceScore
	})
	for i := 0; i < len(ranked) && i < topContentCount; i++ {
		metrics.TopContent = append(metrics.TopContent, models.ContentRef{
			ContentID: ranked[i].ID,
			Title:     ranked[i].Title,
			Platform:  ranked[i].Platform,
			Views:     ranked[i].Views,
			Score:     ranked[i].PerformanceScore,
		})
	}

	return metrics
}

// computePlatformMetrics buckets content by platform and fills the
// platform-specific fields of the stats union. Click-through is
// approximated as shares per view until per-impression data is ingested.
func computePlatformMetrics(items []models.ContentItem) map[platform.Platform]models.PlatformStats {
	stats := make(map[platform.Platform]models.PlatformStats)

	type bucket struct {
		count      int
		views      int
		engagement int
		shares     int
		durationS  int
	}
	buckets := make(map[platform.Platform]*bucket)

	for _, item := range items {
		p := platform.Platform(item.Platform)
		if !p.Valid() {
			continue
		}
		b := buckets[p]
		if b == nil {
			b = &bucket{}
			buckets[p] = b
		}
		b.count++
		b.views += item.Views
		b.engagement += item.EngagementCount
		b.shares += item.Shares
		if item.Duration != nil {
			b.durationS += *item.Duration
		}
	}

	for p, b := range buckets {
		s := models.PlatformStats{
			ContentCount: b.count,
			Views:        b.views,
		}
		if b.views > 0 {
			s.EngagementRate = float64(b.engagement) / float64(b.views)
			s.ClickThroughRate = float64(b.shares) / float64(b.views)
		}

		switch p {
		case platform.YouTube:
			watch := float64(b.durationS) * float64(b.views) / float64(max(b.count, 1)) / 60
			s.WatchTimeMinutes = &watch
		case platform.TikTok:
			shares := b.shares
			s.Shares = &shares
		case platform.Twitch:
			hours := float64(b.durationS) / 3600
			s.StreamHours = &hours
			concurrents := 0.0
			if b.count > 0 {
				concurrents = float64(b.views) / float64(b.count)
			}
			s.AvgConcurrents = &concurrents
		}

		stats[p] = s
	}

	return stats
}

// Baseline demographic splits per platform. Placeholder heuristics until
// platform audience APIs are ingested; shapes match what the dashboards
// render.
var audienceBaselines = map[string]models.AudienceMetrics{
	platform.YouTube.String(): {
		AgeGroups: map[string]float64{"13-17": 8, "18-24": 27, "25-34": 34, "35-44": 18, "45+": 13},
		Countries: map[string]float64{"US": 38, "UK": 11, "CA": 8, "DE": 6, "other": 37},
		Gender:    map[string]float64{"male": 54, "female": 44, "other": 2},
	},
	platform.TikTok.String(): {
		AgeGroups: map[string]float64{"13-17": 22, "18-24": 38, "25-34": 24, "35-44": 10, "45+": 6},
		Countries: map[string]float64{"US": 32, "UK": 9, "ID": 8, "BR": 7, "other": 44},
		Gender:    map[string]float64{"male": 43, "female": 55, "other": 2},
	},
	platform.Twitch.String(): {
		AgeGroups: map[string]float64{"13-17": 10, "18-24": 41, "25-34": 32, "35-44": 12, "45+": 5},
		Countries: map[string]float64{"US": 41, "DE": 10, "UK": 8, "FR": 6, "other": 35},
		Gender:    map[string]float64{"male": 65, "female": 33, "other": 2},
	},
}

func computeAudienceMetrics(user *models.User) models.AudienceMetrics {
	if baseline, ok := audienceBaselines[user.Platform]; ok {
		return baseline
	}
	return audienceBaselines[platform.YouTube.String()]
}

// computeEngagementMetrics histograms engagement by publish hour and
// weekday. Peaks break ties to the first-encountered bucket.
func computeEngagementMetrics(items []models.ContentItem) models.EngagementMetrics {
	var metrics models.EngagementMetrics

	for _, item := range items {
		if item.PublishedAt == nil {
			continue
		}
		metrics.ByHour[item.PublishedAt.Hour()] += float64(item.EngagementCount)
		metrics.ByWeekday[int(item.PublishedAt.Weekday())] += float64(item.EngagementCount)
	}

	for i := 1; i < len(metrics.ByHour); i++ {
		if metrics.ByHour[i] > metrics.ByHour[metrics.PeakHour] {
			metrics.PeakHour = i
		}
	}
	for i := 1; i < len(metrics.ByWeekday); i++ {
		if metrics.ByWeekday[i] > metrics.ByWeekday[metrics.PeakWeekday] {
			metrics.PeakWeekday = i
		}
	}

	return metrics
}

// computeGrowthMetrics builds one series point per day in the period.
// Change values are deltas of the series itself - descriptive statistics,
// not forecasting with error bounds.
func computeGrowthMetrics(items []models.ContentItem, period models.Period) models.GrowthMetrics {
	days := period.Days()
	viewsByDay := make(map[string]int)

	for _, item := range items {
		if item.PublishedAt == nil {
			continue
		}
		viewsByDay[item.PublishedAt.Format("2006-01-02")] += item.Views
	}

	metrics := models.GrowthMetrics{
		Series:      make([]models.GrowthPoint, 0, days),
		Projections: make(map[string]models.GrowthProjection),
	}

	previous := 0
	totalViews := 0
	for i := 0; i < days; i++ {
		date := period.Start.AddDate(0, 0, i)
		views := viewsByDay[date.Format("2006-01-02")]
		totalViews += views

		point := models.GrowthPoint{Date: date, Views: views}
		if i > 0 {
			point.Change = views - previous
		}
		metrics.Series = append(metrics.Series, point)
		previous = views
	}

	dailyAvg := float64(totalViews) / float64(days)
	metrics.Projections["30d"] = models.GrowthProjection{Days: 30, Projected: dailyAvg * 30, Confidence: confidence30d}
	metrics.Projections["90d"] = models.GrowthProjection{Days: 90, Projected: dailyAvg * 90, Confidence: confidence90d}
	metrics.Projections["365d"] = models.GrowthProjection{Days: 365, Projected: dailyAvg * 365, Confidence: confidence365d}

	return metrics
}

// computeTrends classifies half-over-half movement for views, engagement,
// output volume, and task completion using the fixed trendThresholdPct.
func computeTrends(items []models.ContentItem, completions []models.TaskCompletion, period models.Period) []models.Trend {
	midpoint := period.Start.Add(period.End.Sub(period.Start) / 2)

	var firstViews, secondViews int
	var firstEngagement, secondEngagement int
	var firstCount, secondCount int

	for _, item := range items {
		if item.PublishedAt == nil {
			continue
		}
		if item.PublishedAt.Before(midpoint) {
			firstViews += item.Views
			firstEngagement += item.EngagementCount
			firstCount++
		} else {
			secondViews += item.Views
			secondEngagement += item.EngagementCount
			secondCount++
		}
	}

	var firstTasks, secondTasks int
	for _, completion := range completions {
		if completion.CompletedAt.Before(midpoint) {
			firstTasks++
		} else {
			secondTasks++
		}
	}

	return []models.Trend{
		classifyTrend("views", firstViews, secondViews),
		classifyTrend("engagement", firstEngagement, secondEngagement),
		classifyTrend("output", firstCount, secondCount),
		classifyTrend("task_completion", firstTasks, secondTasks),
	}
}

func classifyTrend(metric string, first, second int) models.Trend {
	trend := models.Trend{Metric: metric, Direction: models.TrendStable}

	if first == 0 {
		if second > 0 {
			trend.Direction = models.TrendImproving
			trend.ChangePct = 100
		}
		return trend
	}

	trend.ChangePct = (float64(second) - float64(first)) / float64(first) * 100
	switch {
	case trend.ChangePct > trendThresholdPct:
		trend.Direction = models.TrendImproving
	case trend.ChangePct < -trendThresholdPct:
		trend.Direction = models.TrendDeclining
	}

	return trend
}
