package repository

import (
	"context"
	"errors"
	"time"

	"github.com/creatorpulse/backend/internal/models"
	"gorm.io/gorm"
)

// ContentRepository handles database operations for content items
type ContentRepository interface {
	CreateContent(ctx context.Context, content *models.ContentItem) error
	GetContent(ctx context.Context, contentID string) (*models.ContentItem, error)
	// ListPublishedInPeriod returns the user's content published inside
	// [start, end], oldest first.
	ListPublishedInPeriod(ctx context.Context, userID string, start, end time.Time) ([]models.ContentItem, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.ContentItem, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CreateContent(ctx context.Context, content *models.ContentItem) error {
	if content == nil {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) GetContent(ctx context.Context, contentID string) (*models.ContentItem, error) {
	var content models.ContentItem
	err := r.db.WithContext(ctx).Where("id = ?", contentID).First(&content).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &content, nil
}

func (r *contentRepository) ListPublishedInPeriod(ctx context.Context, userID string, start, end time.Time) ([]models.ContentItem, error) {
	var items []models.ContentItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND published_at IS NOT NULL AND published_at >= ? AND published_at <= ?", userID, start, end).
		Order("published_at ASC").
		Find(&items).Error
	return items, err
}

func (r *contentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.ContentItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var items []models.ContentItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}
