package progress

import "time"

// Pace classifies actual vs expected progress against the fixed
// 3-phase / 90-day program model.
type Pace string

const (
	PaceAhead   Pace = "ahead"
	PaceOnTrack Pace = "on-track"
	PaceBehind  Pace = "behind"
)

// QualityTrend describes the direction of recent quality self-ratings
type QualityTrend string

const (
	QualityImproving QualityTrend = "improving"
	QualityStable    QualityTrend = "stable"
	QualityDeclining QualityTrend = "declining"
)

// CategoryBreakdown summarizes completions within one task category
type CategoryBreakdown struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	AverageTime float64 `json:"average_time"` // minutes, zero when untimed
}

// WeekBreakdown summarizes one program week
type WeekBreakdown struct {
	Week  int `json:"week"`
	Count int `json:"count"`
}

// PlatformBreakdown summarizes completions per platform
type PlatformBreakdown struct {
	Platform   string  `json:"platform"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Projection is the forward-looking slice of the progress report
type Projection struct {
	RemainingTasks          int        `json:"remaining_tasks"`
	AverageTasksPerDay      float64    `json:"average_tasks_per_day"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"` // nil when pace is zero
	Pace                    Pace       `json:"pace"`
	ActualProgressPct       float64    `json:"actual_progress_pct"`
	ExpectedProgressPct     float64    `json:"expected_progress_pct"`
}

// ProgressAnalytics is the full computed progress report. It is derived
// on every call and not persisted; callers cache it.
type ProgressAnalytics struct {
	TotalCompleted int `json:"total_completed"`

	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	ByWeek     []WeekBreakdown     `json:"by_week"`
	ByCategory []CategoryBreakdown `json:"by_category"`
	ByPlatform []PlatformBreakdown `json:"by_platform"`

	// Histograms over completion timestamps
	ByHour    [24]int `json:"by_hour"`
	ByWeekday [7]int  `json:"by_weekday"` // 0 = Sunday

	// Arg-max buckets; ties break to the first-encountered index
	MostProductiveHour    int `json:"most_productive_hour"`
	MostProductiveWeekday int `json:"most_productive_weekday"`

	QualityTrend QualityTrend `json:"quality_trend"`

	Projection Projection `json:"projection"`

	ComputedAt time.Time `json:"computed_at"`
}
