package repository

import (
	"context"
	"time"

	"github.com/creatorpulse/backend/internal/models"
	"gorm.io/gorm"
)

// CompletionRepository reads the append-only task-completion log. The
// task-tracking feature owns writes; AppendCompletion exists for that
// collaborator and for seeding.
type CompletionRepository interface {
	AppendCompletion(ctx context.Context, completion *models.TaskCompletion) error
	// ListCompletions returns the user's full history, oldest first.
	ListCompletions(ctx context.Context, userID string) ([]models.TaskCompletion, error)
	ListCompletionsInPeriod(ctx context.Context, userID string, start, end time.Time) ([]models.TaskCompletion, error)
	CountCompletions(ctx context.Context, userID string) (int64, error)
}

type completionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) AppendCompletion(ctx context.Context, completion *models.TaskCompletion) error {
	if completion == nil {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Create(completion).Error
}

func (r *completionRepository) ListCompletions(ctx context.Context, userID string) ([]models.TaskCompletion, error) {
	var completions []models.TaskCompletion
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&completions).Error
	return completions, err
}

func (r *completionRepository) ListCompletionsInPeriod(ctx context.Context, userID string, start, end time.Time) ([]models.TaskCompletion, error) {
	var completions []models.TaskCompletion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed_at >= ? AND completed_at <= ?", userID, start, end).
		Order("completed_at ASC").
		Find(&completions).Error
	return completions, err
}

func (r *completionRepository) CountCompletions(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TaskCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
