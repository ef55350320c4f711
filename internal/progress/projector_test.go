package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fakeUserRepo struct {
	user *models.User
	err  error
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || f.user.ID != userID {
		return nil, repository.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetTotalUserCount(ctx context.Context) (int64, error) { return 1, nil }

type fakeCompletionRepo struct {
	completions []models.TaskCompletion
	err         error
}

func (f *fakeCompletionRepo) AppendCompletion(ctx context.Context, c *models.TaskCompletion) error {
	f.completions = append(f.completions, *c)
	return nil
}

func (f *fakeCompletionRepo) ListCompletions(ctx context.Context, userID string) ([]models.TaskCompletion, error) {
	return f.completions, f.err
}

func (f *fakeCompletionRepo) ListCompletionsInPeriod(ctx context.Context, userID string, start, end time.Time) ([]models.TaskCompletion, error) {
	return f.completions, f.err
}

func (f *fakeCompletionRepo) CountCompletions(ctx context.Context, userID string) (int64, error) {
	return int64(len(f.completions)), f.err
}

// fixedNow is midday UTC on a Wednesday so date arithmetic in tests
// stays away from day boundaries.
var fixedNow = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func testUser(journeyDaysAgo int) *models.User {
	return &models.User{
		ID:                "user-1",
		Username:          "alice",
		Platform:          "youtube",
		Timezone:          "UTC",
		JourneyStartedAt:  fixedNow.AddDate(0, 0, -journeyDaysAgo),
		TotalPlannedTasks: 90,
	}
}

func completionOn(t time.Time) models.TaskCompletion {
	return models.TaskCompletion{
		UserID:      "user-1",
		TaskID:      "task-001",
		Category:    "production",
		Platform:    "youtube",
		CompletedAt: t,
	}
}

func newTestProjector(user *models.User, completions []models.TaskCompletion) *Projector {
	users := &fakeUserRepo{user: user}
	repo := &fakeCompletionRepo{completions: completions}
	return NewProjector(users, repo).WithNow(func() time.Time { return fixedNow })
}

func TestComputeProgressUserNotFound(t *testing.T) {
	projector := newTestProjector(testUser(10), nil)

	_, err := projector.ComputeProgress(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestComputeProgressStorageError(t *testing.T) {
	users := &fakeUserRepo{user: testUser(10)}
	repo := &fakeCompletionRepo{err: errors.New("connection reset")}
	projector := NewProjector(users, repo).WithNow(func() time.Time { return fixedNow })

	_, err := projector.ComputeProgress(context.Background(), "user-1")
	require.Error(t, err)

	apiErr, ok := apperrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrStorage, apiErr.Code)
}

func TestComputeProgressNoCompletions(t *testing.T) {
	projector := newTestProjector(testUser(45), nil)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, report.TotalCompleted)
	assert.Zero(t, report.CurrentStreak)
	assert.Zero(t, report.LongestStreak)
	assert.Empty(t, report.ByWeek)
	assert.Empty(t, report.ByCategory)
	assert.Empty(t, report.ByPlatform)
	assert.Equal(t, QualityStable, report.QualityTrend)

	// No pace yet, so no completion estimate either
	assert.Nil(t, report.Projection.EstimatedCompletionDate)
	assert.Equal(t, 90, report.Projection.RemainingTasks)

	// Day 45 of 90 expects 50%; zero actual is well outside the band
	assert.InDelta(t, 50.0, report.Projection.ExpectedProgressPct, 0.1)
	assert.Equal(t, PaceBehind, report.Projection.Pace)
}

func TestStreaksConsecutiveDays(t *testing.T) {
	var completions []models.TaskCompletion
	for daysAgo := 4; daysAgo >= 0; daysAgo-- {
		completions = append(completions, completionOn(fixedNow.AddDate(0, 0, -daysAgo)))
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, report.CurrentStreak)
	assert.Equal(t, 5, report.LongestStreak)
}

func TestStreaksMultipleCompletionsSameDayCountOnce(t *testing.T) {
	completions := []models.TaskCompletion{
		completionOn(fixedNow.AddDate(0, 0, -1).Add(-3 * time.Hour)),
		completionOn(fixedNow.AddDate(0, 0, -1)),
		completionOn(fixedNow),
		completionOn(fixedNow.Add(2 * time.Hour)),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.CurrentStreak)
	assert.Equal(t, 2, report.LongestStreak)
}

func TestStreaksGapResetsRun(t *testing.T) {
	// 3-day run, 2-day gap, then yesterday and today
	completions := []models.TaskCompletion{
		completionOn(fixedNow.AddDate(0, 0, -6)),
		completionOn(fixedNow.AddDate(0, 0, -5)),
		completionOn(fixedNow.AddDate(0, 0, -4)),
		completionOn(fixedNow.AddDate(0, 0, -1)),
		completionOn(fixedNow),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.CurrentStreak)
	assert.Equal(t, 3, report.LongestStreak)
}

func TestStreaksStaleHistoryZeroesCurrent(t *testing.T) {
	// A long run that ended three days ago no longer counts as current
	completions := []models.TaskCompletion{
		completionOn(fixedNow.AddDate(0, 0, -7)),
		completionOn(fixedNow.AddDate(0, 0, -6)),
		completionOn(fixedNow.AddDate(0, 0, -5)),
		completionOn(fixedNow.AddDate(0, 0, -4)),
		completionOn(fixedNow.AddDate(0, 0, -3)),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, report.CurrentStreak)
	assert.Equal(t, 5, report.LongestStreak)
}

func TestStreaksYesterdayStillCurrent(t *testing.T) {
	completions := []models.TaskCompletion{
		completionOn(fixedNow.AddDate(0, 0, -2)),
		completionOn(fixedNow.AddDate(0, 0, -1)),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.CurrentStreak)
}

func TestStreaksUseUserTimezone(t *testing.T) {
	// 23:30 UTC yesterday and 23:30 UTC today are consecutive days in
	// UTC but collapse differently in a UTC+10 timezone, where both
	// shift forward into the next local day.
	user := testUser(30)
	user.Timezone = "Australia/Brisbane"

	utcLateYesterday := time.Date(2025, time.June, 17, 23, 30, 0, 0, time.UTC)
	utcLateToday := time.Date(2025, time.June, 18, 23, 30, 0, 0, time.UTC)
	completions := []models.TaskCompletion{
		completionOn(utcLateYesterday),
		completionOn(utcLateToday),
	}
	projector := newTestProjector(user, completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	// Local dates are June 18 and June 19; June 19 is "tomorrow" only
	// from a UTC perspective, locally it is today (now is June 18 22:00
	// local), so the run still counts.
	assert.Equal(t, 2, report.LongestStreak)
}

func TestWeekBreakdownGroupsByProgramWeek(t *testing.T) {
	user := testUser(20)
	completions := []models.TaskCompletion{
		completionOn(user.JourneyStartedAt.AddDate(0, 0, 1)),  // week 1
		completionOn(user.JourneyStartedAt.AddDate(0, 0, 3)),  // week 1
		completionOn(user.JourneyStartedAt.AddDate(0, 0, 8)),  // week 2
		completionOn(user.JourneyStartedAt.AddDate(0, 0, 15)), // week 3
	}
	projector := newTestProjector(user, completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, report.ByWeek, 3)
	assert.Equal(t, WeekBreakdown{Week: 1, Count: 2}, report.ByWeek[0])
	assert.Equal(t, WeekBreakdown{Week: 2, Count: 1}, report.ByWeek[1])
	assert.Equal(t, WeekBreakdown{Week: 3, Count: 1}, report.ByWeek[2])
}

func TestCategoryBreakdownPercentagesAndTime(t *testing.T) {
	minutes30 := 30
	minutes60 := 60
	completions := []models.TaskCompletion{
		{UserID: "user-1", TaskID: "t1", Category: "production", CompletedAt: fixedNow, TimeSpentMinutes: &minutes30},
		{UserID: "user-1", TaskID: "t2", Category: "production", CompletedAt: fixedNow, TimeSpentMinutes: &minutes60},
		{UserID: "user-1", TaskID: "t3", Category: "community", CompletedAt: fixedNow},
		{UserID: "user-1", TaskID: "t4", Category: "production", CompletedAt: fixedNow},
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, report.ByCategory, 2)
	production := report.ByCategory[0]
	assert.Equal(t, "production", production.Category)
	assert.Equal(t, 3, production.Count)
	assert.InDelta(t, 75.0, production.Percentage, 0.01)
	// 90 timed minutes across 3 completions, untimed counts as zero
	assert.InDelta(t, 30.0, production.AverageTime, 0.01)

	community := report.ByCategory[1]
	assert.Equal(t, 1, community.Count)
	assert.InDelta(t, 25.0, community.Percentage, 0.01)
	assert.Zero(t, community.AverageTime)
}

func TestPlatformBreakdownSkipsBlank(t *testing.T) {
	completions := []models.TaskCompletion{
		{UserID: "user-1", TaskID: "t1", Platform: "youtube", CompletedAt: fixedNow},
		{UserID: "user-1", TaskID: "t2", Platform: "tiktok", CompletedAt: fixedNow},
		{UserID: "user-1", TaskID: "t3", Platform: "", CompletedAt: fixedNow},
		{UserID: "user-1", TaskID: "t4", Platform: "youtube", CompletedAt: fixedNow},
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, report.ByPlatform, 2)
	assert.Equal(t, "youtube", report.ByPlatform[0].Platform)
	assert.Equal(t, 2, report.ByPlatform[0].Count)
	// Percentages are over all completions, including platform-less ones
	assert.InDelta(t, 50.0, report.ByPlatform[0].Percentage, 0.01)
}

func TestHistogramsAndProductiveBuckets(t *testing.T) {
	// Two completions at 09:00, one at 14:00. fixedNow is a Wednesday.
	at := func(hour int) time.Time {
		return time.Date(2025, time.June, 18, hour, 0, 0, 0, time.UTC)
	}
	completions := []models.TaskCompletion{
		completionOn(at(9)),
		completionOn(at(9)),
		completionOn(at(14)),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.ByHour[9])
	assert.Equal(t, 1, report.ByHour[14])
	assert.Equal(t, 9, report.MostProductiveHour)
	assert.Equal(t, 3, report.ByWeekday[int(time.Wednesday)])
	assert.Equal(t, int(time.Wednesday), report.MostProductiveWeekday)
}

func TestProductiveHourTieBreaksToEarliest(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, time.June, 18, hour, 0, 0, 0, time.UTC)
	}
	completions := []models.TaskCompletion{
		completionOn(at(8)),
		completionOn(at(20)),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 8, report.MostProductiveHour)
}

func scoredCompletion(daysAgo, score int) models.TaskCompletion {
	c := completionOn(fixedNow.AddDate(0, 0, -daysAgo))
	c.QualityScore = &score
	return c
}

func TestQualityTrendImproving(t *testing.T) {
	var completions []models.TaskCompletion
	for i := 0; i < 10; i++ {
		completions = append(completions, scoredCompletion(30-i, 2))
	}
	for i := 0; i < 10; i++ {
		completions = append(completions, scoredCompletion(15-i, 4))
	}
	projector := newTestProjector(testUser(40), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, QualityImproving, report.QualityTrend)
}

func TestQualityTrendDeclining(t *testing.T) {
	var completions []models.TaskCompletion
	for i := 0; i < 10; i++ {
		completions = append(completions, scoredCompletion(30-i, 5))
	}
	for i := 0; i < 10; i++ {
		completions = append(completions, scoredCompletion(15-i, 3))
	}
	projector := newTestProjector(testUser(40), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, QualityDeclining, report.QualityTrend)
}

func TestQualityTrendStableWithinThreshold(t *testing.T) {
	var completions []models.TaskCompletion
	for i := 0; i < 10; i++ {
		completions = append(completions, scoredCompletion(30-i, 3))
	}
	// Mean shifts by 0.1, below the 0.2 threshold
	for i := 0; i < 10; i++ {
		score := 3
		if i == 0 {
			score = 4
		}
		completions = append(completions, scoredCompletion(15-i, score))
	}
	projector := newTestProjector(testUser(40), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, QualityStable, report.QualityTrend)
}

func TestQualityTrendNeedsTwentyScores(t *testing.T) {
	var completions []models.TaskCompletion
	for i := 0; i < 19; i++ {
		score := 1
		if i >= 10 {
			score = 5
		}
		completions = append(completions, scoredCompletion(19-i, score))
	}
	projector := newTestProjector(testUser(40), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, QualityStable, report.QualityTrend)
}

func TestProjectionLinearEstimate(t *testing.T) {
	// 20 completions spread over the last 10 days; 70 remain, so a
	// finite estimate lands in the future.
	var completions []models.TaskCompletion
	for i := 0; i < 20; i++ {
		completions = append(completions, completionOn(fixedNow.AddDate(0, 0, -10+i/2)))
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	projection := report.Projection
	assert.Equal(t, 70, projection.RemainingTasks)
	assert.InDelta(t, 2.0, projection.AverageTasksPerDay, 0.25)
	require.NotNil(t, projection.EstimatedCompletionDate)
	assert.True(t, projection.EstimatedCompletionDate.After(fixedNow))
}

func TestProjectionSingleDayHistoryNilEstimate(t *testing.T) {
	// All completions on one day give a zero-day span and no pace
	completions := []models.TaskCompletion{
		completionOn(fixedNow),
		completionOn(fixedNow.Add(time.Hour)),
		completionOn(fixedNow.Add(2 * time.Hour)),
	}
	projector := newTestProjector(testUser(30), completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, report.Projection.AverageTasksPerDay)
	assert.Nil(t, report.Projection.EstimatedCompletionDate)
}

func TestProjectionRemainingNeverNegative(t *testing.T) {
	user := testUser(80)
	user.TotalPlannedTasks = 5

	var completions []models.TaskCompletion
	for i := 0; i < 8; i++ {
		completions = append(completions, completionOn(fixedNow.AddDate(0, 0, -i)))
	}
	projector := newTestProjector(user, completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, report.Projection.RemainingTasks)
	assert.Nil(t, report.Projection.EstimatedCompletionDate)
}

func TestPaceAhead(t *testing.T) {
	// Day 30 expects 33%; 50 of 90 done is 55.6%, over the +10pp band
	user := testUser(30)
	var completions []models.TaskCompletion
	for i := 0; i < 50; i++ {
		completions = append(completions, completionOn(fixedNow.AddDate(0, 0, -i%20)))
	}
	projector := newTestProjector(user, completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, PaceAhead, report.Projection.Pace)
}

func TestPaceOnTrackWithinBand(t *testing.T) {
	// Day 45 expects 50%; 45 of 90 done is exactly 50%
	user := testUser(45)
	var completions []models.TaskCompletion
	for i := 0; i < 45; i++ {
		completions = append(completions, completionOn(fixedNow.AddDate(0, 0, -i%40)))
	}
	projector := newTestProjector(user, completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, PaceOnTrack, report.Projection.Pace)
}

func TestPaceBehindOutsideBand(t *testing.T) {
	// Day 45 expects 50%; 27 of 90 done is 30%, under the -10pp band
	user := testUser(45)
	var completions []models.TaskCompletion
	for i := 0; i < 27; i++ {
		completions = append(completions, completionOn(fixedNow.AddDate(0, 0, -i)))
	}
	projector := newTestProjector(user, completions)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, PaceBehind, report.Projection.Pace)
}

func TestExpectedProgressClampedAfterProgramEnd(t *testing.T) {
	user := testUser(120)
	projector := newTestProjector(user, nil)

	report, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, report.Projection.ExpectedProgressPct, 0.01)
}

func TestComputeProgressRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	projector := newTestProjector(testUser(45), nil)
	_, err := projector.ComputeProgress(context.Background(), "user-1")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "progress.compute", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("progress.user_id", "user-1"))
}
