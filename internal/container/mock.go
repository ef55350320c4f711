package container

import (
	"github.com/creatorpulse/backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockContainer is a container designed for testing.
// It allows easy overriding of dependencies with test doubles (mocks, stubs, fakes).
type MockContainer struct {
	*Container
}

// NewMock creates a new mock container
func NewMock() *MockContainer {
	return &MockContainer{
		Container: New(),
	}
}

// WithMockDB sets the database for testing
func (m *MockContainer) WithMockDB(db *gorm.DB) *MockContainer {
	m.SetDB(db)
	return m
}

// WithMockLogger sets a test logger
func (m *MockContainer) WithMockLogger(l *zap.Logger) *MockContainer {
	m.SetLogger(l)
	return m
}

// WithMockUserRepository sets a stub user repository
func (m *MockContainer) WithMockUserRepository(repo repository.UserRepository) *MockContainer {
	m.SetUserRepository(repo)
	return m
}

// WithMockContentRepository sets a stub content repository
func (m *MockContainer) WithMockContentRepository(repo repository.ContentRepository) *MockContainer {
	m.SetContentRepository(repo)
	return m
}

// WithMockCompletionRepository sets a stub completion repository
func (m *MockContainer) WithMockCompletionRepository(repo repository.CompletionRepository) *MockContainer {
	m.SetCompletionRepository(repo)
	return m
}

// WithMockSnapshotRepository sets a stub snapshot repository
func (m *MockContainer) WithMockSnapshotRepository(repo repository.SnapshotRepository) *MockContainer {
	m.SetSnapshotRepository(repo)
	return m
}
