package handlers

import (
	"github.com/creatorpulse/backend/internal/analytics"
	"github.com/creatorpulse/backend/internal/cache"
	"github.com/creatorpulse/backend/internal/crossplatform"
	"github.com/creatorpulse/backend/internal/export"
	"github.com/creatorpulse/backend/internal/progress"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/creatorpulse/backend/internal/storage"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	aggregator *analytics.Aggregator
	projector  *progress.Projector
	adapter    *crossplatform.Adapter
	syncer     *crossplatform.Syncer
	exporter   *export.Exporter

	snapshots repository.SnapshotRepository
	templates repository.TemplateRepository

	cache    *cache.RedisClient
	uploader storage.ExportUploader
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	aggregator *analytics.Aggregator,
	projector *progress.Projector,
	adapter *crossplatform.Adapter,
	syncer *crossplatform.Syncer,
	exporter *export.Exporter,
	snapshots repository.SnapshotRepository,
	templates repository.TemplateRepository,
) *Handlers {
	return &Handlers{
		aggregator: aggregator,
		projector:  projector,
		adapter:    adapter,
		syncer:     syncer,
		exporter:   exporter,
		snapshots:  snapshots,
		templates:  templates,
	}
}

// SetCache sets the Redis cache for progress and snapshot responses
func (h *Handlers) SetCache(client *cache.RedisClient) {
	h.cache = client
}

// SetUploader sets the S3 uploader for export artifacts
func (h *Handlers) SetUploader(uploader storage.ExportUploader) {
	h.uploader = uploader
}
