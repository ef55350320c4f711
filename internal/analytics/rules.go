package analytics

import (
	"fmt"

	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
)

// Thresholds and priorities for the recommendation rule table. These are
// product-chosen constants; the rules form a static expert table, not a
// learned model.
const (
	minPublishesPerWeek = 4.0
	minPlatformCTR      = 0.05
	minEngagementRate   = 0.02

	priorityPublishingCadence = 90
	priorityLowCTR            = 80
	priorityPeakTiming        = 70
	priorityDecliningTrend    = 85
	priorityLowEngagement     = 75
	priorityCrossPost         = 50
)

// ruleInput is everything the rule table may inspect: the five already
// computed metric categories plus the user record.
type ruleInput struct {
	user       *models.User
	content    models.ContentMetrics
	platforms  map[platform.Platform]models.PlatformStats
	engagement models.EngagementMetrics
	growth     models.GrowthMetrics
	trends     []models.Trend
}

// rule is one independent check. Rules that fire append exactly one
// recommendation; multiple rules may fire per call.
type rule func(in ruleInput) (models.Recommendation, bool)

// ruleTable is evaluated in order. Evaluation order determines output
// order only; the Priority field carries importance.
var recommendationRules = []rule{
	rulePublishingCadence,
	ruleDecliningTrend,
	ruleLowCTR,
	ruleLowEngagement,
	rulePeakTiming,
	ruleCrossPost,
}

// generateRecommendations applies the ordered rule table.
func generateRecommendations(in ruleInput) []models.Recommendation {
	var recommendations []models.Recommendation
	for _, r := range recommendationRules {
		if rec, fired := r(in); fired {
			recommendations = append(recommendations, rec)
		}
	}
	return recommendations
}

func rulePublishingCadence(in ruleInput) (models.Recommendation, bool) {
	if in.content.PublishesPerWeek >= minPublishesPerWeek {
		return models.Recommendation{}, false
	}

	return models.Recommendation{
		Category:    "content",
		Title:       "Publish more consistently",
		Description: fmt.Sprintf("You're averaging %.1f posts per week; the algorithm rewards at least %.0f.", in.content.PublishesPerWeek, minPublishesPerWeek),
		Impact:      "high",
		Effort:      "medium",
		Priority:    priorityPublishingCadence,
		ActionItems: []string{
			"Batch-record two pieces in one session",
			"Use a template from the library to cut production time",
		},
		Expected: []models.ExpectedResult{{
			Metric:        "publishes_per_week",
			Current:       in.content.PublishesPerWeek,
			Expected:      minPublishesPerWeek,
			TimeframeDays: 30,
		}},
	}, true
}

func ruleDecliningTrend(in ruleInput) (models.Recommendation, bool) {
	for _, trend := range in.trends {
		if trend.Direction == models.TrendDeclining {
			return models.Recommendation{
				Category:    "content",
				Title:       fmt.Sprintf("Reverse the %s decline", trend.Metric),
				Description: fmt.Sprintf("Your %s dropped %.0f%% across this period.", trend.Metric, -trend.ChangePct),
				Impact:      "high",
				Effort:      "medium",
				Priority:    priorityDecliningTrend,
				ActionItems: []string{
					"Review your top content from this period and repeat its format",
					"Retire the formats in your bottom quartile",
				},
				Expected: []models.ExpectedResult{{
					Metric:        trend.Metric,
					Current:       trend.ChangePct,
					Expected:      0,
					TimeframeDays: 30,
				}},
			}, true
		}
	}
	return models.Recommendation{}, false
}

func ruleLowCTR(in ruleInput) (models.Recommendation, bool) {
	for _, p := range platform.All() {
		stats, ok := in.platforms[p]
		if !ok || stats.Views == 0 {
			continue
		}
		if stats.ClickThroughRate < minPlatformCTR {
			return models.Recommendation{
				Category:    "platform",
				Title:       fmt.Sprintf("Improve %s click-through", p),
				Description: fmt.Sprintf("Your %s CTR is %.1f%%, below the %.0f%% benchmark.", p, stats.ClickThroughRate*100, minPlatformCTR*100),
				Impact:      "medium",
				Effort:      "low",
				Priority:    priorityLowCTR,
				ActionItems: []string{
					"A/B your next three titles",
					"Put the strongest visual in the first frame",
				},
				Expected: []models.ExpectedResult{{
					Metric:        fmt.Sprintf("%s_ctr", p),
					Current:       stats.ClickThroughRate,
					Expected:      minPlatformCTR,
					TimeframeDays: 45,
				}},
			}, true
		}
	}
	return models.Recommendation{}, false
}

func ruleLowEngagement(in ruleInput) (models.Recommendation, bool) {
	if in.content.TotalViews == 0 {
		return models.Recommendation{}, false
	}
	rate := float64(in.content.TotalEngagement) / float64(in.content.TotalViews)
	if rate >= minEngagementRate {
		return models.Recommendation{}, false
	}

	return models.Recommendation{
		Category:    "content",
		Title:       "Lift engagement per view",
		Description: fmt.Sprintf("Overall engagement rate is %.1f%%; aim for %.0f%%.", rate*100, minEngagementRate*100),
		Impact:      "medium",
		Effort:      "medium",
		Priority:    priorityLowEngagement,
		ActionItems: []string{
			"End each piece with one direct question",
			"Reply to every comment in the first hour",
		},
		Expected: []models.ExpectedResult{{
			Metric:        "engagement_rate",
			Current:       rate,
			Expected:      minEngagementRate,
			TimeframeDays: 30,
		}},
	}, true
}

func rulePeakTiming(in ruleInput) (models.Recommendation, bool) {
	// Fires only when a real peak exists; an empty histogram has nothing
	// to recommend.
	if in.engagement.ByHour[in.engagement.PeakHour] == 0 {
		return models.Recommendation{}, false
	}

	return models.Recommendation{
		Category:    "timing",
		Title:       "Publish at your engagement peak",
		Description: fmt.Sprintf("Your audience engages most around %02d:00.", in.engagement.PeakHour),
		Impact:      "medium",
		Effort:      "low",
		Priority:    priorityPeakTiming,
		ActionItems: []string{
			fmt.Sprintf("Schedule uploads for %02d:00", in.engagement.PeakHour),
		},
		Expected: []models.ExpectedResult{{
			Metric:        "engagement",
			Current:       float64(in.content.TotalEngagement),
			Expected:      float64(in.content.TotalEngagement) * 1.15,
			TimeframeDays: 14,
		}},
	}, true
}

func ruleCrossPost(in ruleInput) (models.Recommendation, bool) {
	active := 0
	for _, p := range platform.All() {
		if stats, ok := in.platforms[p]; ok && stats.ContentCount > 0 {
			active++
		}
	}
	if active != 1 || in.content.TotalContent == 0 {
		return models.Recommendation{}, false
	}

	return models.Recommendation{
		Category:    "platform",
		Title:       "Repurpose onto a second platform",
		Description: "All of this period's content went to a single platform; adapted reposts are nearly free reach.",
		Impact:      "medium",
		Effort:      "low",
		Priority:    priorityCrossPost,
		ActionItems: []string{
			"Run your best performer through the cross-platform adapter",
		},
		Expected: []models.ExpectedResult{{
			Metric:        "total_views",
			Current:       float64(in.content.TotalViews),
			Expected:      float64(in.content.TotalViews) * 1.3,
			TimeframeDays: 30,
		}},
	}, true
}
