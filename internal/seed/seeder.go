package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

var niches = []string{"gaming", "cooking", "fitness", "music", "tech", "beauty", "education", "comedy"}

var taskCategories = []string{"content_creation", "engagement", "analytics_review", "learning", "networking"}

var contentTypes = []string{"tutorial", "entertainment", "educational"}

// formatsByPlatform mirrors the publishing formats each platform accepts
var formatsByPlatform = map[platform.Platform][]string{
	platform.YouTube: {"long-form", "tutorial", "vlog", "short"},
	platform.TikTok:  {"short-form", "highlight", "teaser"},
	platform.Twitch:  {"live", "vod", "clip"},
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	logger.Log.Info("Creating users...")
	users, err := s.seedUsers(25)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("Creating content history...")
	if err := s.seedContent(users, 40); err != nil {
		return fmt.Errorf("failed to seed content: %w", err)
	}

	logger.Log.Info("Creating task completions...")
	if err := s.seedCompletions(users); err != nil {
		return fmt.Errorf("failed to seed completions: %w", err)
	}

	logger.Log.Info("Creating template catalog...")
	if err := s.SeedTemplates(); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	return nil
}

// SeedTest seeds the test database with minimal fixed data
func (s *Seeder) SeedTest() error {
	testUserSpecs := []struct {
		username    string
		email       string
		displayName string
		platform    platform.Platform
		tier        models.SubscriptionTier
	}{
		{"alice", "alice@example.com", "Alice Smith", platform.YouTube, models.TierPro},
		{"bob", "bob@example.com", "Bob Johnson", platform.TikTok, models.TierFree},
		{"charlie", "charlie@example.com", "Charlie Brown", platform.Twitch, models.TierStudio},
	}

	var users []models.User
	for _, spec := range testUserSpecs {
		var user models.User
		err := s.db.Where("username = ? OR email = ?", spec.username, spec.email).First(&user).Error
		if err == nil {
			users = append(users, user)
			continue
		}

		user = models.User{
			Email:            spec.email,
			Username:         spec.username,
			DisplayName:      spec.displayName,
			Platform:         spec.platform.String(),
			Niche:            "tech",
			Timezone:         "UTC",
			JourneyStartedAt: time.Now().AddDate(0, 0, -30),
			SubscriptionTier: spec.tier,
			FollowerCount:    1000,
		}

		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create test user %s: %w", spec.username, err)
		}
		users = append(users, user)
	}

	if err := s.seedContent(users, 5); err != nil {
		return fmt.Errorf("failed to seed test content: %w", err)
	}

	if err := s.seedCompletions(users); err != nil {
		return fmt.Errorf("failed to seed test completions: %w", err)
	}

	return s.SeedTemplates()
}

// Clean removes all seed data (use with caution)
func (s *Seeder) Clean() error {
	tables := []any{
		&models.AnalyticsSnapshot{},
		&models.TaskCompletion{},
		&models.ContentItem{},
		&models.Template{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clean table %T: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	tiers := []models.SubscriptionTier{models.TierFree, models.TierFree, models.TierPro, models.TierStudio}

	for i := 0; i < count; i++ {
		primary := platform.All()[rand.Intn(len(platform.All()))]
		daysIn := rand.Intn(90) + 1

		user := models.User{
			Email:             gofakeit.Email(),
			Username:          fmt.Sprintf("%s%d", gofakeit.Username(), i),
			DisplayName:       gofakeit.Name(),
			Platform:          primary.String(),
			Niche:             niches[rand.Intn(len(niches))],
			Timezone:          gofakeit.TimeZoneRegion(),
			JourneyStartedAt:  time.Now().AddDate(0, 0, -daysIn),
			CurrentPhase:      daysIn/30 + 1,
			CurrentWeek:       daysIn/7 + 1,
			TotalPlannedTasks: 90,
			SubscriptionTier:  tiers[rand.Intn(len(tiers))],
			FollowerCount:     rand.Intn(50000),
		}

		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (s *Seeder) seedContent(users []models.User, perUser int) error {
	for _, user := range users {
		daysIn := int(time.Since(user.JourneyStartedAt).Hours() / 24)
		if daysIn < 1 {
			daysIn = 1
		}

		for i := 0; i < perUser; i++ {
			p := platform.All()[rand.Intn(len(platform.All()))]
			// Bias toward the user's primary platform
			if rand.Float64() < 0.6 {
				p = platform.Platform(user.Platform)
			}

			formats := formatsByPlatform[p]
			duration := durationFor(p)
			published := time.Now().AddDate(0, 0, -rand.Intn(daysIn))
			views := rand.Intn(20000)

			item := models.ContentItem{
				UserID:           user.ID,
				Platform:         p.String(),
				Title:            gofakeit.Sentence(6),
				Description:      gofakeit.Paragraph(1, 3, 10, " "),
				ContentType:      contentTypes[rand.Intn(len(contentTypes))],
				Format:           formats[rand.Intn(len(formats))],
				Duration:         &duration,
				Tags:             models.StringArray{user.Niche, gofakeit.HackerNoun(), gofakeit.HackerNoun()},
				PublishedAt:      &published,
				Views:            views,
				EngagementCount:  int(float64(views) * (0.01 + rand.Float64()*0.08)),
				Shares:           int(float64(views) * rand.Float64() * 0.02),
				PerformanceScore: rand.Float64() * 100,
			}

			if err := s.db.Create(&item).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedCompletions(users []models.User) error {
	for _, user := range users {
		daysIn := int(time.Since(user.JourneyStartedAt).Hours() / 24)
		if daysIn < 1 {
			daysIn = 1
		}

		// Roughly one task most days, with gaps so streak math has
		// something to chew on
		for day := 0; day < daysIn; day++ {
			if rand.Float64() < 0.25 {
				continue
			}

			minutes := 15 + rand.Intn(90)
			quality := 1 + rand.Intn(5)

			completion := models.TaskCompletion{
				UserID:           user.ID,
				TaskID:           fmt.Sprintf("task-%03d", day+1),
				Category:         taskCategories[rand.Intn(len(taskCategories))],
				Platform:         user.Platform,
				CompletedAt:      user.JourneyStartedAt.AddDate(0, 0, day).Add(time.Duration(rand.Intn(14)) * time.Hour),
				TimeSpentMinutes: &minutes,
				QualityScore:     &quality,
			}

			if err := s.db.Create(&completion).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedTemplates provisions the read-only template catalog. Idempotent:
// existing template names are skipped.
func (s *Seeder) SeedTemplates() error {
	for _, tpl := range templateCatalog {
		var existing models.Template
		err := s.db.Where("name = ?", tpl.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		t := tpl
		if err := s.db.Create(&t).Error; err != nil {
			return fmt.Errorf("failed to create template %s: %w", tpl.Name, err)
		}
	}
	return nil
}

func durationFor(p platform.Platform) int {
	switch p {
	case platform.TikTok:
		return 15 + rand.Intn(46)
	case platform.Twitch:
		return 1800 + rand.Intn(7200)
	default:
		return 300 + rand.Intn(900)
	}
}
