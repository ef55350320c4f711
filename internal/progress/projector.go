// Package progress computes streaks, breakdowns, and forward projections
// from a user's task-completion history.
package progress

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/creatorpulse/backend/internal/telemetry"
)

const (
	// programDays is the fixed length of the 3-phase creator program
	programDays = 90
	// onTrackBandPct is the tolerance around expected progress that still
	// counts as on-track
	onTrackBandPct = 10.0
	// qualityWindow is how many scored completions each side of the
	// quality-trend comparison uses
	qualityWindow = 10
	// qualityTrendThreshold is the mean-score delta that flips the trend
	// away from stable
	qualityTrendThreshold = 0.2
)

// Projector derives progress analytics from the completion log. The full
// history is scanned on every call; volumes are small, and callers cache
// the result.
type Projector struct {
	users       repository.UserRepository
	completions repository.CompletionRepository

	events *telemetry.BusinessEvents

	// now is swappable for tests
	now func() time.Time
}

// NewProjector creates a progress projector
func NewProjector(users repository.UserRepository, completions repository.CompletionRepository) *Projector {
	return &Projector{
		users:       users,
		completions: completions,
		events:      telemetry.NewBusinessEvents(),
		now:         time.Now,
	}
}

// WithNow overrides the clock. Test hook.
func (p *Projector) WithNow(now func() time.Time) *Projector {
	p.now = now
	return p
}

// ComputeProgress builds the full progress report for a user.
func (p *Projector) ComputeProgress(ctx context.Context, userID string) (*ProgressAnalytics, error) {
	ctx, span := p.events.TraceComputeProgress(ctx, userID)
	report, err := p.computeReport(ctx, userID)
	if err != nil {
		telemetry.EndSpanError(span, err)
		return nil, err
	}
	telemetry.EndSpanOK(span)
	return report, nil
}

func (p *Projector) computeReport(ctx context.Context, userID string) (*ProgressAnalytics, error) {
	user, err := p.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Storage("load user", err)
	}

	completions, err := p.completions.ListCompletions(ctx, userID)
	if err != nil {
		return nil, apperrors.Storage("load completions", err)
	}

	// Streak dates use the user's configured timezone; the stored
	// timestamps are UTC.
	loc := user.Location()
	now := p.now().In(loc)

	report := &ProgressAnalytics{
		TotalCompleted: len(completions),
		QualityTrend:   QualityStable,
		ComputedAt:     now,
	}

	report.CurrentStreak, report.LongestStreak = computeStreaks(completions, loc, now)
	report.ByWeek = weekBreakdown(completions, user.JourneyStartedAt)
	report.ByCategory = categoryBreakdown(completions)
	report.ByPlatform = platformBreakdown(completions)
	report.ByHour, report.ByWeekday = histograms(completions, loc)
	report.MostProductiveHour = argMax(report.ByHour[:])
	report.MostProductiveWeekday = argMax(report.ByWeekday[:])
	report.QualityTrend = qualityTrend(completions)
	report.Projection = p.project(user, completions, loc, now)

	return report, nil
}

// computeStreaks walks distinct completion dates in ascending order. A
// streak continues when consecutive distinct dates differ by exactly one
// day. The current streak only counts when the most recent date is today
// or yesterday; otherwise it is zero even when the longest is not.
func computeStreaks(completions []models.TaskCompletion, loc *time.Location, now time.Time) (current, longest int) {
	if len(completions) == 0 {
		return 0, 0
	}

	seen := make(map[string]bool)
	var dates []time.Time
	for _, c := range completions {
		day := dateOnly(c.CompletedAt.In(loc))
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(dates); i++ {
		// AddDate instead of a 24h duration so DST transitions don't
		// break consecutive-day detection.
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := dateOnly(now)
	last := dates[len(dates)-1]
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		current = run
	}

	return current, longest
}

// weekBreakdown groups completions by program week relative to the
// journey start date.
func weekBreakdown(completions []models.TaskCompletion, journeyStart time.Time) []WeekBreakdown {
	counts := make(map[int]int)
	for _, c := range completions {
		days := int(c.CompletedAt.Sub(journeyStart).Hours() / 24)
		if days < 0 {
			days = 0
		}
		counts[days/7+1]++
	}

	weeks := make([]int, 0, len(counts))
	for week := range counts {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	breakdown := make([]WeekBreakdown, 0, len(weeks))
	for _, week := range weeks {
		breakdown = append(breakdown, WeekBreakdown{Week: week, Count: counts[week]})
	}
	return breakdown
}

func categoryBreakdown(completions []models.TaskCompletion) []CategoryBreakdown {
	counts := make(map[string]int)
	minutes := make(map[string]int)
	var order []string

	for _, c := range completions {
		if counts[c.Category] == 0 {
			order = append(order, c.Category)
		}
		counts[c.Category]++
		if c.TimeSpentMinutes != nil {
			minutes[c.Category] += *c.TimeSpentMinutes
		}
	}

	total := len(completions)
	breakdown := make([]CategoryBreakdown, 0, len(order))
	for _, category := range order {
		count := counts[category]
		avg := 0.0
		if count > 0 {
			avg = float64(minutes[category]) / float64(count)
		}
		breakdown = append(breakdown, CategoryBreakdown{
			Category:    category,
			Count:       count,
			Percentage:  percentage(count, total),
			AverageTime: avg,
		})
	}
	return breakdown
}

func platformBreakdown(completions []models.TaskCompletion) []PlatformBreakdown {
	counts := make(map[string]int)
	var order []string

	for _, c := range completions {
		if c.Platform == "" {
			continue
		}
		if counts[c.Platform] == 0 {
			order = append(order, c.Platform)
		}
		counts[c.Platform]++
	}

	total := len(completions)
	breakdown := make([]PlatformBreakdown, 0, len(order))
	for _, p := range order {
		breakdown = append(breakdown, PlatformBreakdown{
			Platform:   p,
			Count:      counts[p],
			Percentage: percentage(counts[p], total),
		})
	}
	return breakdown
}

func histograms(completions []models.TaskCompletion, loc *time.Location) (byHour [24]int, byWeekday [7]int) {
	for _, c := range completions {
		local := c.CompletedAt.In(loc)
		byHour[local.Hour()]++
		byWeekday[int(local.Weekday())]++
	}
	return byHour, byWeekday
}

// argMax returns the index of the largest bucket. Ties break to the
// first-encountered index.
func argMax(buckets []int) int {
	best := 0
	for i := 1; i < len(buckets); i++ {
		if buckets[i] > buckets[best] {
			best = i
		}
	}
	return best
}

// qualityTrend compares the mean of the last qualityWindow scores against
// the preceding qualityWindow. Fewer than 2*qualityWindow scored
// completions reports stable.
func qualityTrend(completions []models.TaskCompletion) QualityTrend {
	var scores []float64
	for _, c := range completions {
		if c.QualityScore != nil {
			scores = append(scores, float64(*c.QualityScore))
		}
	}

	if len(scores) < 2*qualityWindow {
		return QualityStable
	}

	recent := mean(scores[len(scores)-qualityWindow:])
	previous := mean(scores[len(scores)-2*qualityWindow : len(scores)-qualityWindow])

	switch {
	case recent-previous > qualityTrendThreshold:
		return QualityImproving
	case previous-recent > qualityTrendThreshold:
		return QualityDeclining
	default:
		return QualityStable
	}
}

// project extrapolates completion linearly. The average pace is tasks per
// day across the span between the first and last completion dates; a
// zero pace (no completions, or all on one day) yields a nil estimate
// instead of a division error.
func (p *Projector) project(user *models.User, completions []models.TaskCompletion, loc *time.Location, now time.Time) Projection {
	projection := Projection{Pace: PaceOnTrack}

	remaining := user.TotalPlannedTasks - len(completions)
	if remaining < 0 {
		remaining = 0
	}
	projection.RemainingTasks = remaining

	if len(completions) > 0 {
		first := dateOnly(completions[0].CompletedAt.In(loc))
		last := dateOnly(completions[len(completions)-1].CompletedAt.In(loc))
		span := int(last.Sub(first).Hours() / 24)
		if span > 0 {
			projection.AverageTasksPerDay = float64(len(completions)) / float64(span)
		}
	}

	if projection.AverageTasksPerDay > 0 && remaining > 0 {
		days := int(math.Ceil(float64(remaining) / projection.AverageTasksPerDay))
		estimate := now.AddDate(0, 0, days)
		projection.EstimatedCompletionDate = &estimate
	}

	// Pace against the fixed 90-day model. The ±10pp band is a product
	// simplification; per-niche pacing is an open question.
	daysElapsed := now.Sub(user.JourneyStartedAt).Hours() / 24
	expected := daysElapsed / programDays * 100
	if expected < 0 {
		expected = 0
	}
	if expected > 100 {
		expected = 100
	}
	projection.ExpectedProgressPct = expected

	if user.TotalPlannedTasks > 0 {
		projection.ActualProgressPct = float64(len(completions)) / float64(user.TotalPlannedTasks) * 100
	}

	diff := projection.ActualProgressPct - projection.ExpectedProgressPct
	switch {
	case diff > onTrackBandPct:
		projection.Pace = PaceAhead
	case diff < -onTrackBandPct:
		projection.Pace = PaceBehind
	default:
		projection.Pace = PaceOnTrack
	}

	return projection
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
