package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"translation-backend/internal/config"
	"translation-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type SweepReport struct {
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// RetentionService removes export artifacts once they outlive the retention
// period. Export records are kept; their downloads answer not found.
type RetentionService interface {
	Sweep(ctx context.Context, now time.Time) (SweepReport, error)
}

type retentionService struct {
	exports   repository.ExportRepository
	mirror    ArtifactMirror
	fs        afero.Fs
	root      string
	retention time.Duration
	logger    *logrus.Logger
}

func NewRetentionService(exports repository.ExportRepository, mirror ArtifactMirror, fs afero.Fs, cfg config.ExportConfig, logger *logrus.Logger) RetentionService {
	return &retentionService{
		exports:   exports,
		mirror:    mirror,
		fs:        fs,
		root:      cfg.Root,
		retention: cfg.Retention,
		logger:    logger,
	}
}

func (s *retentionService) Sweep(ctx context.Context, now time.Time) (SweepReport, error) {
	var report SweepReport
	cutoff := now.UTC().Add(-s.retention)

	records, err := s.exports.ListCompletedBefore(ctx, cutoff)
	if err != nil {
		return report, err
	}

	for _, rec := range records {
		log := s.logger.WithField("export_id", rec.ID)

		if rec.FilePath != "" {
			dir := filepath.Dir(rec.FilePath)
			if !withinRoot(s.root, dir) {
				log.WithField("dir", dir).Warn("Export artifact lies outside the export root")
				report.Failed++
				continue
			}
			if err := s.fs.RemoveAll(dir); err != nil {
				log.WithError(err).Warn("Failed to remove expired export")
				report.Failed++
				continue
			}
		}
		if rec.ObjectKey != "" && s.mirror != nil {
			if err := s.mirror.Remove(ctx, rec.ObjectKey); err != nil {
				log.WithError(err).Warn("Failed to remove expired mirrored export")
				report.Failed++
				continue
			}
		}
		if err := s.exports.ClearArtifact(ctx, rec.ID); err != nil {
			log.WithError(err).Warn("Failed to clear expired export")
			report.Failed++
			continue
		}
		report.Removed++
	}

	// Anything else left in the root is a synchronous download or an
	// abandoned run.
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return report, nil
		}
		return report, err
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !entry.IsDir() || !entry.ModTime().Before(cutoff) {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		if err := s.fs.RemoveAll(dir); err != nil {
			s.logger.WithError(err).WithField("dir", dir).Warn("Failed to remove stale export dir")
			report.Failed++
			continue
		}
		report.Removed++
	}

	s.logger.WithFields(logrus.Fields{
		"removed": report.Removed,
		"failed":  report.Failed,
		"cutoff":  cutoff,
	}).Info("Export retention sweep finished")
	return report, nil
}
