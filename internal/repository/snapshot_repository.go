package repository

import (
	"context"
	"errors"
	"time"

	"github.com/creatorpulse/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository persists computed analytics snapshots. One row per
// (user, period); concurrent writers resolve last-writer-wins.
type SnapshotRepository interface {
	UpsertSnapshot(ctx context.Context, snapshot *models.AnalyticsSnapshot) error
	GetSnapshot(ctx context.Context, userID string, start, end time.Time) (*models.AnalyticsSnapshot, error)
	// ListSnapshots returns the user's snapshots, newest period first.
	ListSnapshots(ctx context.Context, userID string, limit int) ([]models.AnalyticsSnapshot, error)
}

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) UpsertSnapshot(ctx context.Context, snapshot *models.AnalyticsSnapshot) error {
	if snapshot == nil {
		return ErrInvalidInput
	}

	// Single-statement upsert on the (user, period) unique index so
	// concurrent writers never interleave partial rows.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "period_start"},
			{Name: "period_end"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"period_type", "content", "platforms", "audience",
			"engagement", "growth", "trends", "recommendations",
			"competitor", "updated_at",
		}),
	}).Create(snapshot).Error
}

func (r *snapshotRepository) GetSnapshot(ctx context.Context, userID string, start, end time.Time) (*models.AnalyticsSnapshot, error) {
	var snapshot models.AnalyticsSnapshot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period_start = ? AND period_end = ?", userID, start, end).
		First(&snapshot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *snapshotRepository) ListSnapshots(ctx context.Context, userID string, limit int) ([]models.AnalyticsSnapshot, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var snapshots []models.AnalyticsSnapshot
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_end DESC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}
