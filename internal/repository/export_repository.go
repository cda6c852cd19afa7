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

type ExportRepository interface {
	Create(ctx context.Context, record *models.Export) error
	FindByID(ctx context.Context, id uint) (*models.Export, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Export, error)
	Delete(ctx context.Context, id uint) error

	// State transitions only apply to processing records and return
	// models.ErrInvalidTransition otherwise.
	MarkCompleted(ctx context.Context, id uint, filePath string) error
	MarkFailed(ctx context.Context, id uint, message string) error

	SetObjectKey(ctx context.Context, id uint, objectKey string) error
	ClearArtifact(ctx context.Context, id uint) error
	ListCompletedBefore(ctx context.Context, cutoff time.Time) ([]models.Export, error)
}

type exportRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewExportRepository(db *database.Database) ExportRepository {
	return &exportRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *exportRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *exportRepository) Create(ctx context.Context, record *models.Export) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if record.Status == "" {
		record.Status = models.ExportStatusProcessing
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *exportRepository) FindByID(ctx context.Context, id uint) (*models.Export, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var record models.Export
	err := r.db.WithContext(ctx).Preload("Project").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("export %d: %w", id, errs.ErrNotFound)
		}
		return nil, err
	}
	return &record, nil
}

// ListByUser returns the user's exports, newest first.
func (r *exportRepository) ListByUser(ctx context.Context, userID uint) ([]models.Export, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var records []models.Export
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	return records, err
}

func (r *exportRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Export{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("export %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *exportRepository) MarkCompleted(ctx context.Context, id uint, filePath string) error {
	return r.transition(ctx, id, map[string]interface{}{
		"status":        models.ExportStatusCompleted,
		"file_path":     filePath,
		"error_message": "",
	})
}

func (r *exportRepository) MarkFailed(ctx context.Context, id uint, message string) error {
	return r.transition(ctx, id, map[string]interface{}{
		"status":        models.ExportStatusFailed,
		"error_message": message,
	})
}

func (r *exportRepository) transition(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&models.Export{}).
		Where("id = ? AND status = ?", id, models.ExportStatusProcessing).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("export %d: %w", id, models.ErrInvalidTransition)
	}
	return nil
}

func (r *exportRepository) SetObjectKey(ctx context.Context, id uint, objectKey string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).
		Model(&models.Export{}).
		Where("id = ?", id).
		Update("object_key", objectKey).Error
}

// ClearArtifact forgets the file and object of a record whose artifact was
// removed. The record itself stays.
func (r *exportRepository) ClearArtifact(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).
		Model(&models.Export{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"file_path": "", "object_key": ""}).Error
}

// ListCompletedBefore returns completed exports last updated before cutoff
// that still reference an artifact.
func (r *exportRepository) ListCompletedBefore(ctx context.Context, cutoff time.Time) ([]models.Export, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var records []models.Export
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", models.ExportStatusCompleted, cutoff).
		Where("file_path <> '' OR object_key <> ''").
		Order("id").
		Find(&records).Error
	return records, err
}
