// Package analytics computes and persists per-period analytics snapshots:
// content, platform, audience, engagement, growth, and trend metrics plus
// rule-generated recommendations.
package analytics

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/creatorpulse/backend/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Filters optionally restricts which content records feed the snapshot
type Filters struct {
	Platforms    []platform.Platform `json:"platforms,omitempty"`
	ContentTypes []string            `json:"content_types,omitempty"`
}

func (f Filters) match(item *models.ContentItem) bool {
	if len(f.Platforms) > 0 {
		found := false
		for _, p := range f.Platforms {
			if item.Platform == p.String() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.ContentTypes) > 0 {
		found := false
		for _, t := range f.ContentTypes {
			if item.ContentType == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Aggregator computes analytics snapshots. Request-scoped and stateless;
// all storage access goes through the injected repositories.
type Aggregator struct {
	users       repository.UserRepository
	contents    repository.ContentRepository
	completions repository.CompletionRepository
	snapshots   repository.SnapshotRepository

	events *telemetry.BusinessEvents
	now    func() time.Time
}

// NewAggregator creates a metrics aggregator
func NewAggregator(
	users repository.UserRepository,
	contents repository.ContentRepository,
	completions repository.CompletionRepository,
	snapshots repository.SnapshotRepository,
) *Aggregator {
	return &Aggregator{
		users:       users,
		contents:    contents,
		completions: completions,
		snapshots:   snapshots,
		events:      telemetry.NewBusinessEvents(),
		now:         time.Now,
	}
}

// WithNow overrides the clock. Test hook.
func (a *Aggregator) WithNow(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// ComputeAnalytics builds the snapshot for (user, period), upserts it,
// and returns it. Each metric category is computed independently from the
// period's records; recommendations are derived from the other
// categories' outputs and therefore run last.
func (a *Aggregator) ComputeAnalytics(ctx context.Context, userID string, period models.Period, filters Filters) (*models.AnalyticsSnapshot, error) {
	if period.End.Before(period.Start) {
		return nil, apperrors.ValidationError("period", "period start must not be after period end")
	}
	if period.Type == "" {
		period.Type = models.PeriodCustom
	}

	ctx, span := a.events.TraceComputeSnapshot(ctx, userID, string(period.Type))
	snapshot, err := a.computeSnapshot(ctx, userID, period, filters)
	if err != nil {
		telemetry.EndSpanError(span, err)
		return nil, err
	}
	telemetry.EndSpanOK(span)
	return snapshot, nil
}

func (a *Aggregator) computeSnapshot(ctx context.Context, userID string, period models.Period, filters Filters) (*models.AnalyticsSnapshot, error) {
	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Storage("load user", err)
	}

	// The content and completion reads are independent store round trips.
	var items []models.ContentItem
	var completions []models.TaskCompletion

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := a.contents.ListPublishedInPeriod(gctx, userID, period.Start, period.End)
		if err != nil {
			return apperrors.Storage("load content", err)
		}
		items = applyFilters(loaded, filters)
		return nil
	})
	g.Go(func() error {
		loaded, err := a.completions.ListCompletionsInPeriod(gctx, userID, period.Start, period.End)
		if err != nil {
			return apperrors.Storage("load completions", err)
		}
		completions = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &models.AnalyticsSnapshot{
		UserID:      userID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		PeriodType:  period.Type,
	}

	snapshot.Content = computeContentMetrics(items, period)
	snapshot.Platforms = computePlatformMetrics(items)
	snapshot.Audience = computeAudienceMetrics(user)
	snapshot.Engagement = computeEngagementMetrics(items)
	snapshot.Growth = computeGrowthMetrics(items, period)
	snapshot.Trends = computeTrends(items, completions, period)

	// Recommendations are a deterministic function of the five categories
	// above; evaluated last by design.
	snapshot.Recommendations = generateRecommendations(ruleInput{
		user:       user,
		content:    snapshot.Content,
		platforms:  snapshot.Platforms,
		engagement: snapshot.Engagement,
		growth:     snapshot.Growth,
		trends:     snapshot.Trends,
	})

	if !user.SubscriptionTier.IsFree() {
		competitor := analyzeCompetitors(user, snapshot)
		snapshot.Competitor = &competitor
	}

	if err := a.snapshots.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, apperrors.Storage("upsert snapshot", err)
	}

	logger.Log.Debug("Analytics snapshot computed",
		logger.WithUserID(userID),
		zap.Time("period_start", period.Start),
		zap.Time("period_end", period.End),
		zap.Int("content_items", len(items)),
		zap.Int("completions", len(completions)),
		zap.Int("recommendations", len(snapshot.Recommendations)),
	)

	return snapshot, nil
}

func applyFilters(items []models.ContentItem, filters Filters) []models.ContentItem {
	filtered := make([]models.ContentItem, 0, len(items))
	for i := range items {
		if filters.match(&items[i]) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}
