package repository

import (
	"context"
	"errors"

	"github.com/creatorpulse/backend/internal/models"
	"gorm.io/gorm"
)

// TemplateRepository serves the seeded template catalog
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, template *models.Template) error
	GetTemplate(ctx context.Context, templateID string) (*models.Template, error)
	// ListTemplates filters by content type and platform; empty strings
	// mean no filter.
	ListTemplates(ctx context.Context, contentType, platform string) ([]models.Template, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *models.Template) error {
	if template == nil {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) GetTemplate(ctx context.Context, templateID string) (*models.Template, error) {
	var template models.Template
	err := r.db.WithContext(ctx).Where("id = ?", templateID).First(&template).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return &template, nil
}

func (r *templateRepository) ListTemplates(ctx context.Context, contentType, platform string) ([]models.Template, error) {
	query := r.db.WithContext(ctx).Model(&models.Template{})

	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}

	var templates []models.Template
	err := query.Order("name ASC").Find(&templates).Error
	return templates, err
}
