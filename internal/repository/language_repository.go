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

type LanguageRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Language, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Language, error)
	FindByCode(ctx context.Context, code string) (*models.Language, error)
}

type languageRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewLanguageRepository(db *database.Database) LanguageRepository {
	return &languageRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *languageRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *languageRepository) FindByID(ctx context.Context, id uint) (*models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var language models.Language
	err := r.db.WithContext(ctx).First(&language, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("language %d: %w", id, errs.ErrNotFound)
		}
		return nil, err
	}
	return &language, nil
}

// FindByIDs returns the languages that exist among ids, in id order.
func (r *languageRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var languages []models.Language
	if len(ids) == 0 {
		return languages, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&languages).Error
	return languages, err
}

func (r *languageRepository) FindByCode(ctx context.Context, code string) (*models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var language models.Language
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&language).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("language %q: %w", code, errs.ErrNotFound)
		}
		return nil, err
	}
	return &language, nil
}
