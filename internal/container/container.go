// Package container provides dependency injection management for the
// CreatorPulse backend. It consolidates all services and provides
// type-safe access to dependencies.
package container

import (
	"context"
	"sync"

	"github.com/creatorpulse/backend/internal/analytics"
	"github.com/creatorpulse/backend/internal/cache"
	"github.com/creatorpulse/backend/internal/crossplatform"
	"github.com/creatorpulse/backend/internal/export"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/progress"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/creatorpulse/backend/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies and provides type-safe access.
// It implements the Service Locator pattern with additional lifecycle management.
type Container struct {
	// Core infrastructure
	db     *gorm.DB
	logger *zap.Logger
	cache  *cache.RedisClient
	s3     *storage.S3Uploader

	// Repositories
	users       repository.UserRepository
	contents    repository.ContentRepository
	completions repository.CompletionRepository
	snapshots   repository.SnapshotRepository
	templates   repository.TemplateRepository

	// Domain services
	aggregator *analytics.Aggregator
	projector  *progress.Projector
	adapter    *crossplatform.Adapter
	syncer     *crossplatform.Syncer
	exporter   *export.Exporter

	// Lifecycle hooks
	cleanupFuncs []func(context.Context) error
	mu           sync.RWMutex
}

// New creates a new empty container.
// Services should be registered using Set* methods.
func New() *Container {
	return &Container{
		cleanupFuncs: make([]func(context.Context) error, 0),
	}
}

// ============================================================================
// CORE INFRASTRUCTURE SETTERS/GETTERS
// ============================================================================

// SetDB registers the database connection
func (c *Container) SetDB(db *gorm.DB) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.db = db
	return c
}

// DB returns the database connection
func (c *Container) DB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// SetLogger registers the logger
func (c *Container) SetLogger(l *zap.Logger) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
	return c
}

// Logger returns the logger instance
func (c *Container) Logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.logger == nil {
		return logger.Log
	}
	return c.logger
}

// SetCache registers the Redis cache client
func (c *Container) SetCache(client *cache.RedisClient) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = client
	return c
}

// Cache returns the Redis cache client
func (c *Container) Cache() *cache.RedisClient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

// SetS3Uploader registers the S3 storage uploader
func (c *Container) SetS3Uploader(uploader *storage.S3Uploader) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s3 = uploader
	return c
}

// S3 returns the S3 storage uploader
func (c *Container) S3() *storage.S3Uploader {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s3
}

// ============================================================================
// REPOSITORY SETTERS/GETTERS
// ============================================================================

// SetUserRepository registers the user repository
func (c *Container) SetUserRepository(repo repository.UserRepository) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = repo
	return c
}

// Users returns the user repository
func (c *Container) Users() repository.UserRepository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.users
}

// SetContentRepository registers the content repository
func (c *Container) SetContentRepository(repo repository.ContentRepository) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contents = repo
	return c
}

// Contents returns the content repository
func (c *Container) Contents() repository.ContentRepository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contents
}

// SetCompletionRepository registers the task completion repository
func (c *Container) SetCompletionRepository(repo repository.CompletionRepository) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completions = repo
	return c
}

// Completions returns the task completion repository
func (c *Container) Completions() repository.CompletionRepository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.completions
}

// SetSnapshotRepository registers the analytics snapshot repository
func (c *Container) SetSnapshotRepository(repo repository.SnapshotRepository) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = repo
	return c
}

// Snapshots returns the analytics snapshot repository
func (c *Container) Snapshots() repository.SnapshotRepository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshots
}

// SetTemplateRepository registers the template repository
func (c *Container) SetTemplateRepository(repo repository.TemplateRepository) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = repo
	return c
}

// Templates returns the template repository
func (c *Container) Templates() repository.TemplateRepository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.templates
}

// ============================================================================
// DOMAIN SERVICE SETTERS/GETTERS
// ============================================================================

// SetAggregator registers the analytics aggregator
func (c *Container) SetAggregator(agg *analytics.Aggregator) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aggregator = agg
	return c
}

// Aggregator returns the analytics aggregator
func (c *Container) Aggregator() *analytics.Aggregator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aggregator
}

// SetProjector registers the progress projector
func (c *Container) SetProjector(p *progress.Projector) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projector = p
	return c
}

// Projector returns the progress projector
func (c *Container) Projector() *progress.Projector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projector
}

// SetAdapter registers the content adapter
func (c *Container) SetAdapter(a *crossplatform.Adapter) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adapter = a
	return c
}

// Adapter returns the content adapter
func (c *Container) Adapter() *crossplatform.Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapter
}

// SetSyncer registers the cross-platform syncer
func (c *Container) SetSyncer(s *crossplatform.Syncer) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncer = s
	return c
}

// Syncer returns the cross-platform syncer
func (c *Container) Syncer() *crossplatform.Syncer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.syncer
}

// SetExporter registers the analytics exporter
func (c *Container) SetExporter(e *export.Exporter) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exporter = e
	return c
}

// Exporter returns the analytics exporter
func (c *Container) Exporter() *export.Exporter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.exporter
}

// ============================================================================
// LIFECYCLE MANAGEMENT
// ============================================================================

// OnCleanup registers a cleanup function to be called during shutdown.
// Cleanup functions are called in LIFO order (last registered, first cleaned up).
// This ensures proper dependency ordering during shutdown.
func (c *Container) OnCleanup(fn func(context.Context) error) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
	return c
}

// Cleanup performs graceful shutdown of all registered services.
// It calls cleanup functions in reverse order of registration.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Resolve the logger up front; Logger() would re-lock c.mu.
	log := c.logger
	if log == nil {
		log = logger.Log
	}

	// Call cleanup functions in reverse order (LIFO)
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](ctx); err != nil {
			// Log error but continue cleanup
			log.Error("Cleanup function failed",
				zap.Int("index", i),
				zap.Error(err),
			)
		}
	}

	return nil
}

// ============================================================================
// VALIDATION
// ============================================================================

// Validate checks that all required dependencies are registered.
// This should be called after initialization and before starting the server.
func (c *Container) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	missingDeps := []string{}

	if c.db == nil {
		missingDeps = append(missingDeps, "database (DB)")
	}
	if c.users == nil {
		missingDeps = append(missingDeps, "user repository")
	}
	if c.contents == nil {
		missingDeps = append(missingDeps, "content repository")
	}
	if c.completions == nil {
		missingDeps = append(missingDeps, "completion repository")
	}
	if c.snapshots == nil {
		missingDeps = append(missingDeps, "snapshot repository")
	}
	if c.aggregator == nil {
		missingDeps = append(missingDeps, "analytics aggregator")
	}
	if c.projector == nil {
		missingDeps = append(missingDeps, "progress projector")
	}
	if c.syncer == nil {
		missingDeps = append(missingDeps, "cross-platform syncer")
	}

	if len(missingDeps) > 0 {
		return NewInitializationError("Missing required dependencies", missingDeps)
	}

	return nil
}

// ============================================================================
// FLUENT API SUPPORT
// ============================================================================

// WithDB is a fluent setter for database
func (c *Container) WithDB(db *gorm.DB) *Container {
	return c.SetDB(db)
}

// WithLogger is a fluent setter for logger
func (c *Container) WithLogger(l *zap.Logger) *Container {
	return c.SetLogger(l)
}

// WithCache is a fluent setter for cache
func (c *Container) WithCache(client *cache.RedisClient) *Container {
	return c.SetCache(client)
}

// WithS3Uploader is a fluent setter for S3
func (c *Container) WithS3Uploader(uploader *storage.S3Uploader) *Container {
	return c.SetS3Uploader(uploader)
}

// WithAggregator is a fluent setter for the analytics aggregator
func (c *Container) WithAggregator(agg *analytics.Aggregator) *Container {
	return c.SetAggregator(agg)
}

// WithProjector is a fluent setter for the progress projector
func (c *Container) WithProjector(p *progress.Projector) *Container {
	return c.SetProjector(p)
}

// WithSyncer is a fluent setter for the cross-platform syncer
func (c *Container) WithSyncer(s *crossplatform.Syncer) *Container {
	return c.SetSyncer(s)
}

// WithExporter is a fluent setter for the analytics exporter
func (c *Container) WithExporter(e *export.Exporter) *Container {
	return c.SetExporter(e)
}
