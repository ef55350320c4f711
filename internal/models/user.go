package models

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a custom type for PostgreSQL text[] that implements Scanner and Valuer
type StringArray []string

// Scan implements the sql.Scanner interface for reading from database
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	// PostgreSQL returns text[] as a string like "{value1,value2,value3}"
	str, ok := value.(string)
	if !ok {
		if bytes, ok := value.([]byte); ok {
			str = string(bytes)
		} else {
			*a = nil
			return nil
		}
	}

	str = strings.TrimPrefix(str, "{")
	str = strings.TrimSuffix(str, "}")

	if str == "" {
		*a = []string{}
		return nil
	}

	// Split by comma (simple case - doesn't handle quoted values with commas)
	*a = strings.Split(str, ",")
	return nil
}

// Value implements the driver.Valuer interface for writing to database
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	return "{" + strings.Join(a, ",") + "}", nil
}

// SubscriptionTier gates premium analytics features
type SubscriptionTier string

const (
	TierFree   SubscriptionTier = "free"
	TierPro    SubscriptionTier = "pro"
	TierStudio SubscriptionTier = "studio"
)

// IsFree reports whether the tier is the free tier
func (t SubscriptionTier) IsFree() bool {
	return t == TierFree || t == ""
}

// User represents a creator account working through the 90-day program
type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName string `gorm:"not null" json:"display_name"`

	// Onboarding selections
	Platform string `gorm:"not null" json:"platform"` // primary publishing platform
	Niche    string `json:"niche"`
	Timezone string `gorm:"default:UTC" json:"timezone"`

	// Journey state (3 phases over 90 days)
	JourneyStartedAt  time.Time `json:"journey_started_at"`
	CurrentPhase      int       `gorm:"default:1" json:"current_phase"`
	CurrentWeek       int       `gorm:"default:1" json:"current_week"`
	TotalPlannedTasks int       `gorm:"default:90" json:"total_planned_tasks"`

	SubscriptionTier SubscriptionTier `gorm:"default:free" json:"subscription_tier"`

	// Cached audience size, refreshed by the platform sync jobs
	FollowerCount int `gorm:"default:0" json:"follower_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID when none is set. Keeps sqlite test
// databases working without a server-side uuid default.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Location resolves the user's configured timezone, falling back to UTC.
func (u *User) Location() *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}
