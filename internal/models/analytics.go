package models

import (
	"time"

	"github.com/creatorpulse/backend/internal/platform"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PeriodType tags the granularity of an analytics period
type PeriodType string

const (
	PeriodDay    PeriodType = "day"
	PeriodWeek   PeriodType = "week"
	PeriodMonth  PeriodType = "month"
	PeriodCustom PeriodType = "custom"
)

// Period is the date range metrics are aggregated over
type Period struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Type  PeriodType `json:"type"`
}

// Days returns the number of calendar days the period spans, inclusive.
// A period with Start == End is one day.
func (p Period) Days() int {
	days := int(p.End.Sub(p.Start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// ContentMetrics summarizes content output for the period
type ContentMetrics struct {
	TotalContent        int          `json:"total_content"`
	TotalViews          int          `json:"total_views"`
	TotalEngagement     int          `json:"total_engagement"`
	TotalShares         int          `json:"total_shares"`
	AvgPerformanceScore float64      `json:"avg_performance_score"`
	PublishesPerWeek    float64      `json:"publishes_per_week"`
	TopContent          []ContentRef `json:"top_content"`
}

// ContentRef is a lightweight pointer to a content item inside a snapshot
type ContentRef struct {
	ContentID string  `json:"content_id"`
	Title     string  `json:"title"`
	Platform  string  `json:"platform"`
	Views     int     `json:"views"`
	Score     float64 `json:"score"`
}

// PlatformStats carries the per-platform slice of the union of
// YouTube/TikTok/Twitch fields. Pointer fields are platform-specific;
// nil means the field does not apply to that platform.
type PlatformStats struct {
	ContentCount     int      `json:"content_count"`
	Views            int      `json:"views"`
	EngagementRate   float64  `json:"engagement_rate"`
	ClickThroughRate float64  `json:"click_through_rate"`
	WatchTimeMinutes *float64 `json:"watch_time_minutes,omitempty"` // youtube
	Shares           *int     `json:"shares,omitempty"`             // tiktok
	StreamHours      *float64 `json:"stream_hours,omitempty"`       // twitch
	AvgConcurrents   *float64 `json:"avg_concurrents,omitempty"`    // twitch
}

// AudienceMetrics holds demographic splits as percentages
type AudienceMetrics struct {
	AgeGroups map[string]float64 `json:"age_groups"`
	Countries map[string]float64 `json:"countries"`
	Gender    map[string]float64 `json:"gender"`
}

// EngagementMetrics holds the when-are-they-watching histograms
type EngagementMetrics struct {
	ByHour      [24]float64 `json:"by_hour"`
	ByWeekday   [7]float64  `json:"by_weekday"` // 0 = Sunday
	PeakHour    int         `json:"peak_hour"`
	PeakWeekday int         `json:"peak_weekday"`
}

// GrowthPoint is one day of the growth time series. Change is the delta
// against the previous point - descriptive, not a forecast.
type GrowthPoint struct {
	Date   time.Time `json:"date"`
	Views  int       `json:"views"`
	Change int       `json:"change"`
}

// GrowthProjection extrapolates a metric forward. Confidence is a fixed
// heuristic constant per horizon, not derived from variance.
type GrowthProjection struct {
	Days       int     `json:"days"`
	Projected  float64 `json:"projected"`
	Confidence float64 `json:"confidence"`
}

// GrowthMetrics bundles the daily series with fixed-horizon projections
type GrowthMetrics struct {
	Series      []GrowthPoint               `json:"series"`
	Projections map[string]GrowthProjection `json:"projections"` // keys: 30d, 90d, 365d
}

// TrendDirection classifies a metric's movement over the period
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// Trend is one classified metric movement
type Trend struct {
	Metric    string         `json:"metric"`
	Direction TrendDirection `json:"direction"`
	ChangePct float64        `json:"change_pct"`
}

// ExpectedResult quantifies what a recommendation should move
type ExpectedResult struct {
	Metric        string  `json:"metric"`
	Current       float64 `json:"current"`
	Expected      float64 `json:"expected"`
	TimeframeDays int     `json:"timeframe_days"`
}

// Recommendation is one fired expert rule. Recomputed on every analytics
// request; persisted only as part of the snapshot.
type Recommendation struct {
	Category    string           `json:"category"` // content, timing, platform
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Impact      string           `json:"impact"` // high, medium, low
	Effort      string           `json:"effort"`
	Priority    int              `json:"priority"`
	ActionItems []string         `json:"action_items"`
	Expected    []ExpectedResult `json:"expected_results"`
}

// Benchmark compares the user's value against the competitive field
type Benchmark struct {
	Yours         float64 `json:"yours"`
	CompetitorAvg float64 `json:"competitor_avg"`
	TopPerformer  float64 `json:"top_performer"`
	Percentile    float64 `json:"percentile"`
}

// CompetitorAnalysis is the paid-tier benchmark block. Trend uses a fixed
// threshold comparison, not statistical significance testing.
type CompetitorAnalysis struct {
	Benchmarks map[string]Benchmark `json:"benchmarks"`
	Trend      TrendDirection       `json:"trend"`
}

// AnalyticsSnapshot is the persisted materialization of computed analytics
// for one user and one period. At most one row per (user, period); writes
// are upserts with last-writer-wins.
type AnalyticsSnapshot struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;uniqueIndex:idx_snapshots_user_period" json:"user_id"`

	PeriodStart time.Time  `gorm:"not null;uniqueIndex:idx_snapshots_user_period" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"not null;uniqueIndex:idx_snapshots_user_period" json:"period_end"`
	PeriodType  PeriodType `gorm:"default:custom" json:"period_type"`

	Content         ContentMetrics                `gorm:"type:jsonb;serializer:json" json:"content"`
	Platforms       map[platform.Platform]PlatformStats `gorm:"type:jsonb;serializer:json" json:"platforms"`
	Audience        AudienceMetrics               `gorm:"type:jsonb;serializer:json" json:"audience"`
	Engagement      EngagementMetrics             `gorm:"type:jsonb;serializer:json" json:"engagement"`
	Growth          GrowthMetrics                 `gorm:"type:jsonb;serializer:json" json:"growth"`
	Trends          []Trend                       `gorm:"type:jsonb;serializer:json" json:"trends"`
	Recommendations []Recommendation              `gorm:"type:jsonb;serializer:json" json:"recommendations"`
	Competitor      *CompetitorAnalysis           `gorm:"type:jsonb;serializer:json" json:"competitor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AnalyticsSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
