package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"translation-backend/internal/database"
	"translation-backend/internal/errs"
	"translation-backend/internal/export"
	"translation-backend/internal/models"

	"gorm.io/gorm"
)

// TranslationUpsert is one row of a bulk update. Nil optional fields keep the
// stored value of an existing translation, or the column default for a new one.
type TranslationUpsert struct {
	TranslationKeyID    uint
	LanguageID          uint
	Text                *string
	Status              *string
	IsMachineTranslated *bool
}

type TranslationRepository interface {
	CreateKey(ctx context.Context, key *models.TranslationKey) error
	FindKey(ctx context.Context, projectID uint, key string) (*models.TranslationKey, error)
	Create(ctx context.Context, translation *models.Translation) error
	FindByKeyAndLanguage(ctx context.Context, keyID, languageID uint) (*models.Translation, error)

	// Export
	FetchForExport(ctx context.Context, projectID uint, languageIDs []uint) ([]export.Entry, error)

	// Batch operations, each in a single transaction
	BulkUpsert(ctx context.Context, rows []TranslationUpsert, updatedBy uint) (int, error)
	CopyBetweenLanguages(ctx context.Context, projectID, sourceLanguageID, targetLanguageID uint, overwrite bool, updatedBy uint) (int, error)

	MissingTranslations(ctx context.Context, projectID, languageID uint) ([]models.TranslationKey, error)
}

type translationRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewTranslationRepository(db *database.Database) TranslationRepository {
	return &translationRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *translationRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *translationRepository) CreateKey(ctx context.Context, key *models.TranslationKey) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(key).Error
}

func (r *translationRepository) FindKey(ctx context.Context, projectID uint, key string) (*models.TranslationKey, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var tk models.TranslationKey
	err := r.db.WithContext(ctx).
		Where(&models.TranslationKey{ProjectID: projectID, Key: key}).
		First(&tk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("translation key %q: %w", key, errs.ErrNotFound)
		}
		return nil, err
	}
	return &tk, nil
}

func (r *translationRepository) Create(ctx context.Context, translation *models.Translation) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(translation).Error
}

func (r *translationRepository) FindByKeyAndLanguage(ctx context.Context, keyID, languageID uint) (*models.Translation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return findTranslation(r.db.WithContext(ctx), keyID, languageID)
}

func findTranslation(db *gorm.DB, keyID, languageID uint) (*models.Translation, error) {
	var translation models.Translation
	err := db.Where("translation_key_id = ? AND language_id = ?", keyID, languageID).
		First(&translation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &translation, nil
}

type exportRow struct {
	TranslationKeyID uint
	Text             *string
	Code             string
}

// FetchForExport returns every key of the project that has at least one
// translation in the given languages, in key creation order. No language ids
// means every language attached to the project. Missing or null texts are
// left out of Entry.Texts, so they render as "".
func (r *translationRepository) FetchForExport(ctx context.Context, projectID uint, languageIDs []uint) ([]export.Entry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)

	var projects int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&projects).Error; err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	if projects == 0 {
		return nil, fmt.Errorf("project %d: %w", projectID, errs.ErrNotFound)
	}

	if len(languageIDs) == 0 {
		err := db.Model(&models.ProjectLanguage{}).
			Where("project_id = ?", projectID).
			Order("id").
			Pluck("language_id", &languageIDs).Error
		if err != nil {
			return nil, fmt.Errorf("fetch project languages: %w", err)
		}
		if len(languageIDs) == 0 {
			return []export.Entry{}, nil
		}
	}

	var rows []exportRow
	err := db.Table("translations").
		Select("translations.translation_key_id, translations.text, languages.code").
		Joins("JOIN languages ON languages.id = translations.language_id").
		Joins("JOIN translation_keys ON translation_keys.id = translations.translation_key_id").
		Where("translation_keys.project_id = ? AND translations.language_id IN ?", projectID, languageIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch translations: %w", err)
	}
	if len(rows) == 0 {
		return []export.Entry{}, nil
	}

	texts := make(map[uint]map[string]string)
	for _, row := range rows {
		m, ok := texts[row.TranslationKeyID]
		if !ok {
			m = make(map[string]string)
			texts[row.TranslationKeyID] = m
		}
		if row.Text != nil {
			m[row.Code] = *row.Text
		}
	}

	var keys []models.TranslationKey
	err = db.Where("project_id = ?", projectID).Order("id").Find(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("fetch translation keys: %w", err)
	}

	entries := make([]export.Entry, 0, len(texts))
	for _, k := range keys {
		m, ok := texts[k.ID]
		if !ok {
			continue
		}
		entries = append(entries, export.Entry{
			Key:         k.Key,
			Group:       k.GroupName(),
			Placeholder: k.IsPlaceholder,
			Texts:       m,
		})
	}
	return entries, nil
}

// BulkUpsert writes every row or none of them.
func (r *translationRepository) BulkUpsert(ctx context.Context, rows []TranslationUpsert, updatedBy uint) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			if err := upsertTranslation(tx, row, updatedBy); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func upsertTranslation(tx *gorm.DB, row TranslationUpsert, updatedBy uint) error {
	var keys int64
	if err := tx.Model(&models.TranslationKey{}).Where("id = ?", row.TranslationKeyID).Count(&keys).Error; err != nil {
		return err
	}
	if keys == 0 {
		return fmt.Errorf("translation key %d: %w", row.TranslationKeyID, errs.ErrNotFound)
	}

	existing, err := findTranslation(tx, row.TranslationKeyID, row.LanguageID)
	if err != nil {
		return err
	}

	if existing == nil {
		t := models.Translation{
			TranslationKeyID: row.TranslationKeyID,
			LanguageID:       row.LanguageID,
			Text:             row.Text,
			Status:           models.TranslationStatusDraft,
			UpdatedBy:        &updatedBy,
		}
		if row.Status != nil {
			t.Status = *row.Status
		}
		if row.IsMachineTranslated != nil {
			t.IsMachineTranslated = *row.IsMachineTranslated
		}
		return tx.Create(&t).Error
	}

	updates := map[string]interface{}{
		"text":       row.Text,
		"updated_by": updatedBy,
	}
	if row.Status != nil {
		updates["status"] = *row.Status
	}
	if row.IsMachineTranslated != nil {
		updates["is_machine_translated"] = *row.IsMachineTranslated
	}
	return tx.Model(existing).Updates(updates).Error
}

// CopyBetweenLanguages copies every source text of the project into the target
// language as a manual draft. Existing target rows are kept unless overwrite
// is set. It returns the number of rows written.
func (r *translationRepository) CopyBetweenLanguages(ctx context.Context, projectID, sourceLanguageID, targetLanguageID uint, overwrite bool, updatedBy uint) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	draft := models.TranslationStatusDraft
	manual := false
	count := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sources []models.Translation
		err := tx.Joins("JOIN translation_keys ON translation_keys.id = translations.translation_key_id").
			Where("translation_keys.project_id = ? AND translations.language_id = ?", projectID, sourceLanguageID).
			Order("translations.translation_key_id").
			Find(&sources).Error
		if err != nil {
			return err
		}

		for _, src := range sources {
			if !overwrite {
				existing, err := findTranslation(tx, src.TranslationKeyID, targetLanguageID)
				if err != nil {
					return err
				}
				if existing != nil {
					continue
				}
			}
			row := TranslationUpsert{
				TranslationKeyID:    src.TranslationKeyID,
				LanguageID:          targetLanguageID,
				Text:                src.Text,
				Status:              &draft,
				IsMachineTranslated: &manual,
			}
			if err := upsertTranslation(tx, row, updatedBy); err != nil {
				return fmt.Errorf("copy key %d: %w", src.TranslationKeyID, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MissingTranslations lists the project's keys with no translation row for
// the language. Group placeholders are not real keys and are left out.
func (r *translationRepository) MissingTranslations(ctx context.Context, projectID, languageID uint) ([]models.TranslationKey, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var keys []models.TranslationKey
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND is_placeholder = ?", projectID, false).
		Where("NOT EXISTS (SELECT 1 FROM translations WHERE translations.translation_key_id = translation_keys.id AND translations.language_id = ?)", languageID).
		Order("id").
		Find(&keys).Error
	return keys, err
}
