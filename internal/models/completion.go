package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskCompletion is one record of the append-only completion log owned by
// the task-tracking feature. This subsystem only reads it; records are
// never mutated or deleted here.
type TaskCompletion struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index:idx_completions_user_completed" json:"user_id"`
	TaskID string `gorm:"not null" json:"task_id"`

	Category string `gorm:"index" json:"category"`
	Platform string `json:"platform"`

	CompletedAt      time.Time `gorm:"not null;index:idx_completions_user_completed" json:"completed_at"`
	TimeSpentMinutes *int      `json:"time_spent_minutes,omitempty"`
	QualityScore     *int      `json:"quality_score,omitempty"` // 1-5 self rating

	CreatedAt time.Time `json:"created_at"`
}

func (c *TaskCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
