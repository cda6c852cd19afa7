package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"translation-backend/internal/database"
	"translation-backend/internal/errs"
	"translation-backend/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	AttachLanguage(ctx context.Context, projectID, languageID uint) error
	Languages(ctx context.Context, projectID uint) ([]models.Language, error)
	HasLanguage(ctx context.Context, projectID, languageID uint) (bool, error)
}

type projectRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewProjectRepository(db *database.Database) ProjectRepository {
	return &projectRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *projectRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("ProjectLanguages", func(db *gorm.DB) *gorm.DB {
			return db.Order("project_languages.id")
		}).
		Preload("ProjectLanguages.Language").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, errs.ErrNotFound)
		}
		return nil, err
	}
	return &project, nil
}

// AttachLanguage adds a language to the project. Attaching twice is a no-op.
func (r *projectRepository) AttachLanguage(ctx context.Context, projectID, languageID uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	pl := models.ProjectLanguage{ProjectID: projectID, LanguageID: languageID}
	return r.db.WithContext(ctx).
		Where("project_id = ? AND language_id = ?", projectID, languageID).
		FirstOrCreate(&pl).Error
}

// Languages returns the project languages in the order they were attached.
func (r *projectRepository) Languages(ctx context.Context, projectID uint) ([]models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var languages []models.Language
	err := r.db.WithContext(ctx).
		Model(&models.Language{}).
		Select("languages.*").
		Joins("JOIN project_languages ON project_languages.language_id = languages.id").
		Where("project_languages.project_id = ?", projectID).
		Order("project_languages.id").
		Find(&languages).Error
	return languages, err
}

func (r *projectRepository) HasLanguage(ctx context.Context, projectID, languageID uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectLanguage{}).
		Where("project_id = ? AND language_id = ?", projectID, languageID).
		Count(&count).Error
	return count > 0, err
}
