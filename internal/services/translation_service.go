package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"translation-backend/internal/errs"
	"translation-backend/internal/models"
	"translation-backend/internal/repository"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

const groupKeyPrefix = "_group_"

type TranslationService interface {
	BulkUpdate(ctx context.Context, userID uint, rows []repository.TranslationUpsert) (int, error)
	CopyBetweenLanguages(ctx context.Context, userID, projectID, sourceLanguageID, targetLanguageID uint, overwrite bool) (int, error)
	CreateGroup(ctx context.Context, projectID uint, name, description string) (*models.TranslationKey, error)
	MissingTranslations(ctx context.Context, projectID, languageID uint) ([]models.TranslationKey, error)
}

type translationService struct {
	translations repository.TranslationRepository
	projects     repository.ProjectRepository
	languages    repository.LanguageRepository
	logger       *logrus.Logger
}

func NewTranslationService(
	translations repository.TranslationRepository,
	projects repository.ProjectRepository,
	languages repository.LanguageRepository,
	logger *logrus.Logger,
) TranslationService {
	return &translationService{
		translations: translations,
		projects:     projects,
		languages:    languages,
		logger:       logger,
	}
}

// BulkUpdate writes all rows in one transaction; nothing is stored if any
// row fails.
func (s *translationService) BulkUpdate(ctx context.Context, userID uint, rows []repository.TranslationUpsert) (int, error) {
	if len(rows) == 0 {
		return 0, errs.Invalid("translations", "required")
	}
	for i, row := range rows {
		if row.Status != nil && !models.IsValidTranslationStatus(*row.Status) {
			return 0, errs.Invalid(fmt.Sprintf("translations.%d.status", i), "oneof")
		}
	}

	count, err := s.translations.BulkUpsert(ctx, rows, userID)
	if err != nil {
		s.logger.WithError(err).WithField("rows", len(rows)).Error("Bulk translation update rolled back")
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{"rows": count, "user_id": userID}).Info("Translations updated")
	return count, nil
}

func (s *translationService) CopyBetweenLanguages(ctx context.Context, userID, projectID, sourceLanguageID, targetLanguageID uint, overwrite bool) (int, error) {
	if sourceLanguageID == targetLanguageID {
		return 0, errs.Invalid("target_language_id", "must differ from source_language_id")
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return 0, err
	}
	for _, id := range []uint{sourceLanguageID, targetLanguageID} {
		if _, err := s.languages.FindByID(ctx, id); err != nil {
			return 0, err
		}
	}

	count, err := s.translations.CopyBetweenLanguages(ctx, projectID, sourceLanguageID, targetLanguageID, overwrite, userID)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"source":     sourceLanguageID,
		"target":     targetLanguageID,
		"overwrite":  overwrite,
		"copied":     count,
	}).Info("Translations copied")
	return count, nil
}

// CreateGroup registers a named group through a placeholder key, so the group
// exists before any real key is filed under it.
func (s *translationService) CreateGroup(ctx context.Context, projectID uint, name, description string) (*models.TranslationKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Invalid("name", "required")
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	key := groupKeyPrefix + slug.Make(name)
	_, err := s.translations.FindKey(ctx, projectID, key)
	if err == nil {
		return nil, errs.Invalid("name", "group already exists")
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	placeholder := &models.TranslationKey{
		ProjectID:     projectID,
		Key:           key,
		Description:   description,
		Group:         &name,
		IsPlaceholder: true,
	}
	if err := s.translations.CreateKey(ctx, placeholder); err != nil {
		return nil, err
	}
	return placeholder, nil
}

func (s *translationService) MissingTranslations(ctx context.Context, projectID, languageID uint) ([]models.TranslationKey, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.languages.FindByID(ctx, languageID); err != nil {
		return nil, err
	}
	return s.translations.MissingTranslations(ctx, projectID, languageID)
}
