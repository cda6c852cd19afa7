package services

import (
	"context"
	"fmt"

	"translation-backend/internal/errs"
	"translation-backend/internal/export"
	"translation-backend/internal/models"
	"translation-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Download is an export artifact the requesting user may fetch.
type Download struct {
	Path        string
	FileName    string
	ContentType string
	Size        int64
}

// AuthorizeDownload decides whether userID may download the record's
// artifact. Ownership is checked before readiness so other users learn
// nothing about the record's state.
func AuthorizeDownload(fs afero.Fs, record *models.Export, userID uint) (*Download, error) {
	if record.UserID != userID {
		return nil, fmt.Errorf("export %d: %w", record.ID, errs.ErrForbidden)
	}
	if record.Status != models.ExportStatusCompleted {
		return nil, fmt.Errorf("export %d is %s: %w", record.ID, record.Status, errs.ErrNotReady)
	}
	if record.FilePath == "" {
		return nil, fmt.Errorf("export %d file: %w", record.ID, errs.ErrNotFound)
	}

	info, err := fs.Stat(record.FilePath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("export %d file: %w", record.ID, errs.ErrNotFound)
	}

	return &Download{
		Path:        record.FilePath,
		FileName:    record.FileName,
		ContentType: export.ContentType(extensionOf(record.FileName)),
		Size:        info.Size(),
	}, nil
}

type DownloadService interface {
	Open(ctx context.Context, exportID, userID uint) (*Download, afero.File, error)
	PresignedURL(ctx context.Context, exportID, userID uint) (string, error)
}

type downloadService struct {
	exports repository.ExportRepository
	mirror  ArtifactMirror
	fs      afero.Fs
	logger  *logrus.Logger
}

func NewDownloadService(exports repository.ExportRepository, mirror ArtifactMirror, fs afero.Fs, logger *logrus.Logger) DownloadService {
	return &downloadService{
		exports: exports,
		mirror:  mirror,
		fs:      fs,
		logger:  logger,
	}
}

// Open returns the artifact opened for reading. The caller closes the file.
func (s *downloadService) Open(ctx context.Context, exportID, userID uint) (*Download, afero.File, error) {
	record, err := s.exports.FindByID(ctx, exportID)
	if err != nil {
		return nil, nil, err
	}

	dl, err := AuthorizeDownload(s.fs, record, userID)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.fs.Open(dl.Path)
	if err != nil {
		s.logger.WithError(err).WithField("export_id", exportID).Warn("Export file vanished before it could be opened")
		return nil, nil, fmt.Errorf("export %d file: %w", exportID, errs.ErrNotFound)
	}
	return dl, f, nil
}

// PresignedURL returns an object storage link for a mirrored artifact.
func (s *downloadService) PresignedURL(ctx context.Context, exportID, userID uint) (string, error) {
	record, err := s.exports.FindByID(ctx, exportID)
	if err != nil {
		return "", err
	}
	if record.UserID != userID {
		return "", fmt.Errorf("export %d: %w", exportID, errs.ErrForbidden)
	}
	if record.Status != models.ExportStatusCompleted {
		return "", fmt.Errorf("export %d is %s: %w", exportID, record.Status, errs.ErrNotReady)
	}
	if s.mirror == nil || record.ObjectKey == "" {
		return "", fmt.Errorf("export %d is not mirrored: %w", exportID, errs.ErrNotFound)
	}
	return s.mirror.PresignedURL(ctx, record.ObjectKey, record.FileName)
}
