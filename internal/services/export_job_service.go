package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"translation-backend/internal/config"
	"translation-backend/internal/errs"
	"translation-backend/internal/export"
	"translation-backend/internal/models"
	"translation-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// finalizeTimeout bounds the writes that move a record out of processing.
// They run detached from the task context, which may already be done.
const finalizeTimeout = 10 * time.Second

// Enqueuer hands an export record over to the background worker.
type Enqueuer interface {
	EnqueueExport(ctx context.Context, exportID uint) error
}

type ExportJobService interface {
	Dispatch(ctx context.Context, userID, projectID uint, format export.Format, languageIDs []uint) (*models.Export, error)
	Run(ctx context.Context, exportID uint) error
	ListForUser(ctx context.Context, userID uint) ([]models.Export, error)
	Delete(ctx context.Context, exportID, userID uint) error
}

type exportJobService struct {
	exports  repository.ExportRepository
	projects repository.ProjectRepository
	exporter ExportService
	enqueuer Enqueuer
	mirror   ArtifactMirror
	fs       afero.Fs
	root     string
	logger   *logrus.Logger
}

// NewExportJobService wires the async export lifecycle. mirror may be nil
// when object storage is disabled.
func NewExportJobService(
	exports repository.ExportRepository,
	projects repository.ProjectRepository,
	exporter ExportService,
	enqueuer Enqueuer,
	mirror ArtifactMirror,
	fs afero.Fs,
	cfg config.ExportConfig,
	logger *logrus.Logger,
) ExportJobService {
	return &exportJobService{
		exports:  exports,
		projects: projects,
		exporter: exporter,
		enqueuer: enqueuer,
		mirror:   mirror,
		fs:       fs,
		root:     cfg.Root,
		logger:   logger,
	}
}

// Dispatch validates the request, records it as processing and queues it.
func (s *exportJobService) Dispatch(ctx context.Context, userID, projectID uint, format export.Format, languageIDs []uint) (*models.Export, error) {
	if _, err := export.ParseFormat(string(format)); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	langs, err := s.exporter.ResolveLanguages(ctx, project, languageIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(langs))
	for i, l := range langs {
		ids[i] = l.ID
	}

	record := &models.Export{
		ProjectID:   project.ID,
		UserID:      userID,
		Format:      string(format),
		LanguageIDs: ids,
		FileName:    FileName(project, format, len(langs)),
		Status:      models.ExportStatusProcessing,
	}
	if err := s.exports.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create export record: %w", err)
	}

	if err := s.enqueuer.EnqueueExport(ctx, record.ID); err != nil {
		s.logger.WithError(err).WithField("export_id", record.ID).Error("Failed to enqueue export")
		s.markFailed(ctx, record.ID, "could not queue export: "+err.Error())
		return nil, fmt.Errorf("enqueue export %d: %w", record.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"export_id":  record.ID,
		"project_id": project.ID,
		"user_id":    userID,
		"format":     format,
	}).Info("Export dispatched")

	record.Project = project
	return record, nil
}

// Run executes a dispatched export. Records already completed or failed are
// left alone so a redelivered task is harmless. Every other outcome leaves the
// record completed or failed, even when ctx ends mid-run.
func (s *exportJobService) Run(ctx context.Context, exportID uint) error {
	log := s.logger.WithField("export_id", exportID)

	record, err := s.exports.FindByID(ctx, exportID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.markFailed(ctx, exportID, err.Error())
		}
		return err
	}
	if record.IsTerminal() {
		log.WithField("status", record.Status).Info("Skipping export that already finished")
		return nil
	}

	result, err := s.exporter.ExportProject(ctx, record.ProjectID, export.Format(record.Format), record.LanguageIDs)
	if err != nil {
		log.WithError(err).Error("Export failed")
		s.markFailed(ctx, exportID, err.Error())
		return err
	}

	finalCtx, cancel := detached(ctx)
	err = s.exports.MarkCompleted(finalCtx, exportID, result.Path)
	cancel()
	if err != nil {
		// The artifact has no owner either way.
		s.removeDir(filepath.Dir(result.Path))
		if errors.Is(err, models.ErrInvalidTransition) {
			log.Warn("Export finished after its record left processing")
			return nil
		}
		log.WithError(err).Error("Failed to mark export as completed")
		s.markFailed(ctx, exportID, "could not record finished export: "+err.Error())
		return err
	}
	log.WithField("path", result.Path).Info("Export completed")

	if s.mirror != nil {
		objectKey := fmt.Sprintf("exports/%d/%s", exportID, record.FileName)
		if err := s.mirror.Upload(ctx, objectKey, result.Path, export.ContentType(extensionOf(record.FileName))); err != nil {
			log.WithError(err).Warn("Export stays local only")
			return nil
		}
		if err := s.exports.SetObjectKey(ctx, exportID, objectKey); err != nil {
			log.WithError(err).Warn("Failed to record mirrored object")
		}
	}
	return nil
}

// markFailed moves the record to failed on a context detached from ctx.
func (s *exportJobService) markFailed(ctx context.Context, exportID uint, message string) {
	ctx, cancel := detached(ctx)
	defer cancel()

	err := s.exports.MarkFailed(ctx, exportID, message)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrInvalidTransition):
		s.logger.WithField("export_id", exportID).Warn("Export already left processing")
	default:
		s.logger.WithError(err).WithField("export_id", exportID).Error("Failed to mark export as failed")
	}
}

func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
}

func (s *exportJobService) ListForUser(ctx context.Context, userID uint) ([]models.Export, error) {
	return s.exports.ListByUser(ctx, userID)
}

// Delete removes an export the user owns together with its artifact.
func (s *exportJobService) Delete(ctx context.Context, exportID, userID uint) error {
	record, err := s.exports.FindByID(ctx, exportID)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return fmt.Errorf("export %d: %w", exportID, errs.ErrForbidden)
	}

	if record.FilePath != "" {
		s.removeDir(filepath.Dir(record.FilePath))
	}
	if record.ObjectKey != "" && s.mirror != nil {
		if err := s.mirror.Remove(ctx, record.ObjectKey); err != nil {
			s.logger.WithError(err).WithField("export_id", exportID).Warn("Failed to remove mirrored export")
		}
	}

	if err := s.exports.Delete(ctx, exportID); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"export_id": exportID, "user_id": userID}).Info("Export deleted")
	return nil
}

// removeDir deletes a scratch directory directly below the export root.
func (s *exportJobService) removeDir(dir string) {
	if !withinRoot(s.root, dir) {
		s.logger.WithField("dir", dir).Warn("Refusing to remove directory outside the export root")
		return
	}
	if err := s.fs.RemoveAll(dir); err != nil {
		s.logger.WithError(err).WithField("dir", dir).Warn("Failed to remove export dir")
	}
}

func withinRoot(root, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(dir))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !strings.Contains(rel, string(filepath.Separator))
}

func extensionOf(fileName string) string {
	return strings.TrimPrefix(filepath.Ext(fileName), ".")
}
