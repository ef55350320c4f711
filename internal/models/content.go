package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentItem is a published (or adapted) piece of content with its
// performance counters. Counters are written by the platform sync jobs;
// the analytics subsystem reads them.
type ContentItem struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Platform    string      `gorm:"not null;index" json:"platform"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ContentType string      `gorm:"default:entertainment" json:"content_type"`
	Format      string      `json:"format"`
	Duration    *int        `json:"duration,omitempty"` // seconds
	Tags        StringArray `gorm:"type:text[]" json:"tags"`

	// Set when this record was produced by cross-platform sync
	SourceContentID *string `gorm:"type:uuid" json:"source_content_id,omitempty"`

	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`

	// Performance counters
	Views            int      `gorm:"default:0" json:"views"`
	EngagementCount  int      `gorm:"default:0" json:"engagement_count"`
	Shares           int      `gorm:"default:0" json:"shares"`
	Revenue          *float64 `json:"revenue,omitempty"`
	PerformanceScore float64  `gorm:"default:0" json:"performance_score"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *ContentItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// EngagementRate returns engagement per view, zero when unviewed.
func (c *ContentItem) EngagementRate() float64 {
	if c.Views == 0 {
		return 0
	}
	return float64(c.EngagementCount) / float64(c.Views)
}

// Template is a seeded template-library entry. The catalog is read-only
// at runtime; cmd/seed provisions it.
type Template struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	ContentType string      `gorm:"not null;index" json:"content_type"`
	Platform    string      `gorm:"not null;index" json:"platform"`
	Description string      `gorm:"type:text" json:"description"`
	Outline     StringArray `gorm:"type:text[]" json:"outline"`
	Tags        StringArray `gorm:"type:text[]" json:"tags"`

	// Rough production time for planning, in minutes
	EstimatedMinutes int `gorm:"default:60" json:"estimated_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
