package repository

import (
	"context"
	"testing"
	"time"

	"github.com/creatorpulse/backend/internal/models"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the GORM repositories against an in-memory
// sqlite database. Postgres-only behavior (text[] columns, jsonb) is
// covered by the serializer fallbacks the models define.
type RepositoryTestSuite struct {
	suite.Suite
	db *gorm.DB

	users       UserRepository
	contents    ContentRepository
	completions CompletionRepository
	snapshots   SnapshotRepository
	templates   TemplateRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)

	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.ContentItem{},
		&models.TaskCompletion{},
		&models.AnalyticsSnapshot{},
		&models.Template{},
	))

	s.db = db
	s.users = NewUserRepository(db)
	s.contents = NewContentRepository(db)
	s.completions = NewCompletionRepository(db)
	s.snapshots = NewSnapshotRepository(db)
	s.templates = NewTemplateRepository(db)
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *RepositoryTestSuite) createUser(username string) *models.User {
	user := &models.User{
		Email:             username + "@example.com",
		Username:          username,
		DisplayName:       username,
		Platform:          "youtube",
		Timezone:          "UTC",
		JourneyStartedAt:  time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		TotalPlannedTasks: 90,
	}
	s.Require().NoError(s.users.CreateUser(context.Background(), user))
	return user
}

func (s *RepositoryTestSuite) TestCreateUserAssignsID() {
	user := s.createUser("alice")
	s.NotEmpty(user.ID)

	loaded, err := s.users.GetUser(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Equal("alice", loaded.Username)
}

func (s *RepositoryTestSuite) TestGetUserNotFound() {
	_, err := s.users.GetUser(context.Background(), "00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *RepositoryTestSuite) TestGetUserByUsernameCaseInsensitive() {
	s.createUser("Alice")

	loaded, err := s.users.GetUserByUsername(context.Background(), "aLiCe")
	s.Require().NoError(err)
	s.Equal("Alice", loaded.Username)
}

func (s *RepositoryTestSuite) TestCreateUserNilRejected() {
	s.ErrorIs(s.users.CreateUser(context.Background(), nil), ErrInvalidInput)
}

func (s *RepositoryTestSuite) TestListPublishedInPeriodBoundsAndOrder() {
	user := s.createUser("alice")

	at := func(day int) *time.Time {
		t := time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC)
		return &t
	}
	for _, published := range []*time.Time{at(10), at(5), at(20)} {
		s.Require().NoError(s.contents.CreateContent(context.Background(), &models.ContentItem{
			UserID:      user.ID,
			Platform:    "youtube",
			Title:       "post",
			PublishedAt: published,
		}))
	}
	// A draft has no published_at and never shows up
	s.Require().NoError(s.contents.CreateContent(context.Background(), &models.ContentItem{
		UserID:   user.ID,
		Platform: "youtube",
		Title:    "draft",
	}))

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	items, err := s.contents.ListPublishedInPeriod(context.Background(), user.ID, start, end)
	s.Require().NoError(err)

	s.Require().Len(items, 2)
	s.True(items[0].PublishedAt.Before(*items[1].PublishedAt))
}

func (s *RepositoryTestSuite) TestContentTagsRoundTrip() {
	user := s.createUser("alice")

	content := &models.ContentItem{
		UserID:   user.ID,
		Platform: "tiktok",
		Title:    "tagged",
		Tags:     models.StringArray{"gaming", "speedrun"},
	}
	s.Require().NoError(s.contents.CreateContent(context.Background(), content))

	loaded, err := s.contents.GetContent(context.Background(), content.ID)
	s.Require().NoError(err)
	s.Equal(models.StringArray{"gaming", "speedrun"}, loaded.Tags)
}

func (s *RepositoryTestSuite) TestGetContentNotFound() {
	_, err := s.contents.GetContent(context.Background(), "missing")
	s.ErrorIs(err, ErrContentNotFound)
}

func (s *RepositoryTestSuite) TestListCompletionsOldestFirst() {
	user := s.createUser("alice")

	for _, daysAgo := range []int{1, 5, 3} {
		s.Require().NoError(s.completions.AppendCompletion(context.Background(), &models.TaskCompletion{
			UserID:      user.ID,
			TaskID:      "task-001",
			Category:    "production",
			CompletedAt: time.Now().UTC().AddDate(0, 0, -daysAgo),
		}))
	}

	completions, err := s.completions.ListCompletions(context.Background(), user.ID)
	s.Require().NoError(err)
	s.Require().Len(completions, 3)
	s.True(completions[0].CompletedAt.Before(completions[1].CompletedAt))
	s.True(completions[1].CompletedAt.Before(completions[2].CompletedAt))

	count, err := s.completions.CountCompletions(context.Background(), user.ID)
	s.Require().NoError(err)
	s.EqualValues(3, count)
}

func (s *RepositoryTestSuite) TestListCompletionsScopedToUser() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	s.Require().NoError(s.completions.AppendCompletion(context.Background(), &models.TaskCompletion{
		UserID:      alice.ID,
		TaskID:      "task-001",
		CompletedAt: time.Now().UTC(),
	}))

	completions, err := s.completions.ListCompletions(context.Background(), bob.ID)
	s.Require().NoError(err)
	s.Empty(completions)
}

func (s *RepositoryTestSuite) snapshotFor(userID string) *models.AnalyticsSnapshot {
	return &models.AnalyticsSnapshot{
		UserID:      userID,
		PeriodStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		PeriodType:  models.PeriodMonth,
		Content:     models.ContentMetrics{TotalContent: 4, TotalViews: 1200},
		Platforms: map[platform.Platform]models.PlatformStats{
			platform.YouTube: {ContentCount: 4, Views: 1200},
		},
	}
}

func (s *RepositoryTestSuite) TestUpsertSnapshotInsertsThenUpdates() {
	user := s.createUser("alice")

	first := s.snapshotFor(user.ID)
	s.Require().NoError(s.snapshots.UpsertSnapshot(context.Background(), first))

	// Same (user, period) with new numbers replaces the row
	second := s.snapshotFor(user.ID)
	second.Content.TotalViews = 9000
	s.Require().NoError(s.snapshots.UpsertSnapshot(context.Background(), second))

	loaded, err := s.snapshots.GetSnapshot(context.Background(), user.ID, first.PeriodStart, first.PeriodEnd)
	s.Require().NoError(err)
	s.Equal(9000, loaded.Content.TotalViews)

	var count int64
	s.Require().NoError(s.db.Model(&models.AnalyticsSnapshot{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *RepositoryTestSuite) TestSnapshotJSONColumnsRoundTrip() {
	user := s.createUser("alice")

	snapshot := s.snapshotFor(user.ID)
	snapshot.Recommendations = []models.Recommendation{{
		Category: "content",
		Title:    "Publish more consistently",
		Priority: 90,
	}}
	s.Require().NoError(s.snapshots.UpsertSnapshot(context.Background(), snapshot))

	loaded, err := s.snapshots.GetSnapshot(context.Background(), user.ID, snapshot.PeriodStart, snapshot.PeriodEnd)
	s.Require().NoError(err)

	s.Require().Contains(loaded.Platforms, platform.YouTube)
	s.Equal(1200, loaded.Platforms[platform.YouTube].Views)
	s.Require().Len(loaded.Recommendations, 1)
	s.Equal(90, loaded.Recommendations[0].Priority)
}

func (s *RepositoryTestSuite) TestListSnapshotsNewestFirst() {
	user := s.createUser("alice")

	for month := time.June; month <= time.August; month++ {
		snapshot := s.snapshotFor(user.ID)
		snapshot.PeriodStart = time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC)
		snapshot.PeriodEnd = time.Date(2025, month, 28, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(s.snapshots.UpsertSnapshot(context.Background(), snapshot))
	}

	snapshots, err := s.snapshots.ListSnapshots(context.Background(), user.ID, 2)
	s.Require().NoError(err)

	s.Require().Len(snapshots, 2)
	s.Equal(time.August, snapshots[0].PeriodEnd.Month())
	s.Equal(time.July, snapshots[1].PeriodEnd.Month())
}

func (s *RepositoryTestSuite) TestGetSnapshotNotFound() {
	user := s.createUser("alice")
	_, err := s.snapshots.GetSnapshot(context.Background(), user.ID, time.Now(), time.Now())
	s.ErrorIs(err, ErrSnapshotNotFound)
}

func (s *RepositoryTestSuite) TestTemplateFilters() {
	seed := []models.Template{
		{Name: "Step-by-Step Tutorial", ContentType: "tutorial", Platform: "youtube"},
		{Name: "Quick Tip Short", ContentType: "tutorial", Platform: "tiktok"},
		{Name: "Watch Party", ContentType: "entertainment", Platform: "twitch"},
	}
	for i := range seed {
		s.Require().NoError(s.templates.CreateTemplate(context.Background(), &seed[i]))
	}

	all, err := s.templates.ListTemplates(context.Background(), "", "")
	s.Require().NoError(err)
	s.Len(all, 3)

	tutorials, err := s.templates.ListTemplates(context.Background(), "tutorial", "")
	s.Require().NoError(err)
	s.Len(tutorials, 2)

	tiktok, err := s.templates.ListTemplates(context.Background(), "tutorial", "tiktok")
	s.Require().NoError(err)
	s.Require().Len(tiktok, 1)
	s.Equal("Quick Tip Short", tiktok[0].Name)
}

func (s *RepositoryTestSuite) TestGetTemplateNotFound() {
	_, err := s.templates.GetTemplate(context.Background(), "missing")
	s.ErrorIs(err, ErrTemplateNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
