package container

import (
	"context"
	"errors"
	"testing"

	"github.com/creatorpulse/backend/internal/analytics"
	"github.com/creatorpulse/backend/internal/crossplatform"
	"github.com/creatorpulse/backend/internal/progress"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

// newMockContainer assembles a fully wired mock container over an
// in-memory database, the way handler-level tests bootstrap services.
func newMockContainer(t *testing.T) *MockContainer {
	t.Helper()
	db := openTestDB(t)

	users := repository.NewUserRepository(db)
	contents := repository.NewContentRepository(db)
	completions := repository.NewCompletionRepository(db)
	snapshots := repository.NewSnapshotRepository(db)

	mock := NewMock().
		WithMockDB(db).
		WithMockLogger(zap.NewNop()).
		WithMockUserRepository(users).
		WithMockContentRepository(contents).
		WithMockCompletionRepository(completions).
		WithMockSnapshotRepository(snapshots)

	adapter := crossplatform.NewAdapter()
	mock.SetAggregator(analytics.NewAggregator(users, contents, completions, snapshots))
	mock.SetProjector(progress.NewProjector(users, completions))
	mock.SetSyncer(crossplatform.NewSyncer(adapter, contents))

	return mock
}

func TestMockContainerValidates(t *testing.T) {
	mock := newMockContainer(t)

	require.NoError(t, mock.Validate())
	assert.NotNil(t, mock.DB())
	assert.NotNil(t, mock.Users())
	assert.NotNil(t, mock.Aggregator())
	assert.NotNil(t, mock.Projector())
	assert.NotNil(t, mock.Syncer())
}

func TestValidateReportsMissingDependencies(t *testing.T) {
	mock := NewMock().WithMockLogger(zap.NewNop())

	err := mock.Validate()
	require.Error(t, err)

	var initErr *InitializationError
	require.ErrorAs(t, err, &initErr)
	assert.Contains(t, initErr.MissingDeps, "database (DB)")
	assert.Contains(t, initErr.MissingDeps, "analytics aggregator")
}

func TestCleanupRunsInReverseOrder(t *testing.T) {
	mock := NewMock().WithMockLogger(zap.NewNop())

	var order []string
	mock.OnCleanup(func(ctx context.Context) error {
		order = append(order, "db")
		return nil
	})
	mock.OnCleanup(func(ctx context.Context) error {
		order = append(order, "cache")
		return errors.New("already closed")
	})
	mock.OnCleanup(func(ctx context.Context) error {
		order = append(order, "server")
		return nil
	})

	require.NoError(t, mock.Cleanup(context.Background()))
	assert.Equal(t, []string{"server", "cache", "db"}, order)
}
