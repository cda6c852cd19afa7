package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"translation-backend/internal/config"
	"translation-backend/internal/errs"
	"translation-backend/internal/export"
	"translation-backend/internal/models"
	"translation-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ExportResult describes an artifact written to the export root.
type ExportResult struct {
	Path      string
	FileName  string
	Format    export.Format
	Languages []export.Language
}

type ExportService interface {
	ExportProject(ctx context.Context, projectID uint, format export.Format, languageIDs []uint) (*ExportResult, error)
	ExportLanguage(ctx context.Context, projectID uint, languageCode string) (*ExportResult, error)
	ResolveLanguages(ctx context.Context, project *models.Project, languageIDs []uint) ([]export.Language, error)
}

type exportService struct {
	projects     repository.ProjectRepository
	languages    repository.LanguageRepository
	translations repository.TranslationRepository
	fs           afero.Fs
	root         string
	logger       *logrus.Logger
}

func NewExportService(
	projects repository.ProjectRepository,
	languages repository.LanguageRepository,
	translations repository.TranslationRepository,
	fs afero.Fs,
	cfg config.ExportConfig,
	logger *logrus.Logger,
) ExportService {
	return &exportService{
		projects:     projects,
		languages:    languages,
		translations: translations,
		fs:           fs,
		root:         cfg.Root,
		logger:       logger,
	}
}

// FileName is the download name of a project export.
func FileName(project *models.Project, format export.Format, languageCount int) string {
	return fmt.Sprintf("%s.%s", project.Slug, format.Extension(languageCount))
}

func (s *exportService) ExportProject(ctx context.Context, projectID uint, format export.Format, languageIDs []uint) (*ExportResult, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	langs, err := s.ResolveLanguages(ctx, project, languageIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.run(ctx, project, format, langs)
	if err != nil {
		return nil, err
	}
	result.FileName = FileName(project, format, len(langs))
	return result, nil
}

// ExportLanguage exports one attached language of the project as JSON.
func (s *exportService) ExportLanguage(ctx context.Context, projectID uint, languageCode string) (*ExportResult, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	lang, err := s.languages.FindByCode(ctx, languageCode)
	if err != nil {
		return nil, err
	}

	attached := false
	for _, pl := range project.ProjectLanguages {
		if pl.LanguageID == lang.ID {
			attached = true
			break
		}
	}
	if !attached {
		return nil, errs.Invalid("language", "not attached to project")
	}

	result, err := s.run(ctx, project, export.FormatJSON, []export.Language{toExportLanguage(*lang)})
	if err != nil {
		return nil, err
	}
	result.FileName = fmt.Sprintf("%s_%s.json", project.Slug, lang.Code)
	return result, nil
}

// ResolveLanguages returns the explicitly requested languages in request
// order, or the project languages in attachment order when none are given.
func (s *exportService) ResolveLanguages(ctx context.Context, project *models.Project, languageIDs []uint) ([]export.Language, error) {
	if len(languageIDs) == 0 {
		langs := make([]export.Language, 0, len(project.ProjectLanguages))
		for _, pl := range project.ProjectLanguages {
			if pl.Language != nil {
				langs = append(langs, toExportLanguage(*pl.Language))
			}
		}
		if len(langs) == 0 {
			return nil, errs.Invalid("languages", "project has no languages")
		}
		return langs, nil
	}

	ids := make([]uint, 0, len(languageIDs))
	seen := make(map[uint]bool, len(languageIDs))
	for _, id := range languageIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	found, err := s.languages.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Language, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}

	langs := make([]export.Language, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("language %d: %w", id, errs.ErrNotFound)
		}
		langs = append(langs, toExportLanguage(l))
	}
	return langs, nil
}

func (s *exportService) run(ctx context.Context, project *models.Project, format export.Format, langs []export.Language) (*ExportResult, error) {
	exporter, err := export.ExporterFor(format, s.fs, s.logger)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(langs))
	for i, l := range langs {
		ids[i] = l.ID
	}
	entries, err := s.translations.FetchForExport(ctx, project.ID, ids)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, strings.ReplaceAll(uuid.NewString(), "-", ""))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create export dir: %v", errs.ErrIO, err)
	}

	path, err := exporter.Export(ctx, entries, langs, dir)
	if err != nil {
		if rmErr := s.fs.RemoveAll(dir); rmErr != nil {
			s.logger.WithError(rmErr).WithField("dir", dir).Warn("Failed to remove export dir")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"format":     format,
		"languages":  len(langs),
		"keys":       len(entries),
		"path":       path,
	}).Info("Project exported")

	return &ExportResult{
		Path:      path,
		Format:    format,
		Languages: langs,
	}, nil
}

func toExportLanguage(l models.Language) export.Language {
	return export.Language{ID: l.ID, Code: l.Code, Name: l.Name}
}
