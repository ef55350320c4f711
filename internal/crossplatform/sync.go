package crossplatform

import (
	"context"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/creatorpulse/backend/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TargetResult is the per-platform outcome of a sync. A failed target is
// data, not an error: callers inspect entries instead of catching.
type TargetResult struct {
	Platform  string `json:"platform"`
	Success   bool   `json:"success"`
	ContentID string `json:"content_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SyncResult bundles every target outcome with the aggregated suggestions
type SyncResult struct {
	Synced          []TargetResult `json:"synced"`
	Recommendations []string       `json:"recommendations"`
}

// Syncer orchestrates adapting one stored content item to several target
// platforms, persisting each successful adaptation as a new draft.
type Syncer struct {
	adapter  *Adapter
	contents repository.ContentRepository
	events   *telemetry.BusinessEvents
}

// NewSyncer creates a sync orchestrator
func NewSyncer(adapter *Adapter, contents repository.ContentRepository) *Syncer {
	return &Syncer{
		adapter:  adapter,
		contents: contents,
		events:   telemetry.NewBusinessEvents(),
	}
}

// SyncAcrossPlatforms adapts the source content to every requested target.
// Targets are processed in parallel with per-target error isolation; one
// bad target never aborts the others. The call only fails outright when
// the target list is empty or the source content cannot be loaded.
func (s *Syncer) SyncAcrossPlatforms(ctx context.Context, userID, contentID string, targets []string) (*SyncResult, error) {
	if len(targets) == 0 {
		return nil, apperrors.BadRequest("at least one target platform is required")
	}

	ctx, span := s.events.TraceContentSync(ctx, contentID, len(targets))
	result, err := s.syncAll(ctx, userID, contentID, targets)
	if err != nil {
		telemetry.EndSpanError(span, err)
		return nil, err
	}
	telemetry.EndSpanOK(span)
	return result, nil
}

// syncAll loads the source and fans out to every target. Per-target
// failures land in the result entries; only a bad source fails the call.
func (s *Syncer) syncAll(ctx context.Context, userID, contentID string, targets []string) (*SyncResult, error) {
	source, err := s.contents.GetContent(ctx, contentID)
	if err != nil {
		if err == repository.ErrContentNotFound {
			return nil, apperrors.NotFound("source content")
		}
		return nil, apperrors.Storage("load content", err)
	}
	if source.UserID != userID {
		return nil, apperrors.NotFound("source content")
	}

	sourceContent := PlatformContent{
		ID:          source.ID,
		Platform:    platform.Platform(source.Platform),
		Title:       source.Title,
		Description: source.Description,
		Format:      source.Format,
		Duration:    source.Duration,
		Tags:        source.Tags,
	}

	results := make([]TargetResult, len(targets))
	suggestionSets := make([][]string, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			results[i], suggestionSets[i] = s.syncOne(gctx, source, sourceContent, target)
			// Per-target failures land in the result entry; never fail
			// the group.
			return nil
		})
	}
	_ = g.Wait()

	result := &SyncResult{Synced: results}
	seen := make(map[string]bool)
	for _, set := range suggestionSets {
		for _, suggestion := range set {
			if !seen[suggestion] {
				seen[suggestion] = true
				result.Recommendations = append(result.Recommendations, suggestion)
			}
		}
	}

	return result, nil
}

// syncOne adapts and persists a single target, converting every failure
// into a result entry.
func (s *Syncer) syncOne(ctx context.Context, source *models.ContentItem, sourceContent PlatformContent, rawTarget string) (TargetResult, []string) {
	target, err := platform.Parse(rawTarget)
	if err != nil {
		return TargetResult{Platform: rawTarget, Error: err.Error()}, nil
	}

	ctx, span := s.events.TraceContentAdapt(ctx, sourceContent.Platform.String(), target.String())

	adaptation, err := s.adapter.Adapt(sourceContent, target)
	if err != nil {
		telemetry.EndSpanError(span, err)
		return TargetResult{Platform: rawTarget, Error: err.Error()}, nil
	}

	draft := applyAdaptation(source, target, adaptation.Adaptations)
	if err := s.contents.CreateContent(ctx, draft); err != nil {
		logger.Error("Failed to persist adapted content",
			logger.WithUserID(source.UserID),
			logger.WithContentID(source.ID),
			logger.WithPlatform(rawTarget),
			zap.Error(err),
		)
		telemetry.EndSpanError(span, err)
		return TargetResult{Platform: rawTarget, Error: "failed to save adapted content"}, nil
	}

	telemetry.EndSpanOK(span)
	return TargetResult{
		Platform:  rawTarget,
		Success:   true,
		ContentID: draft.ID,
	}, adaptation.Suggestions
}

// applyAdaptation materializes the patch into a new draft content item
// owned by the same user on the target platform.
func applyAdaptation(source *models.ContentItem, target platform.Platform, changes FieldChanges) *models.ContentItem {
	draft := &models.ContentItem{
		UserID:          source.UserID,
		Platform:        target.String(),
		Title:           source.Title,
		Description:     source.Description,
		ContentType:     source.ContentType,
		Format:          source.Format,
		Duration:        source.Duration,
		Tags:            source.Tags,
		SourceContentID: &source.ID,
	}

	if changes.Title != nil {
		draft.Title = *changes.Title
	}
	if changes.Description != nil {
		draft.Description = *changes.Description
	}
	if changes.Format != nil {
		draft.Format = *changes.Format
	}
	if changes.Duration != nil {
		duration := *changes.Duration
		draft.Duration = &duration
	}
	if changes.Tags != nil {
		draft.Tags = changes.Tags
	}

	return draft
}
