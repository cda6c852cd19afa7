package services

import (
	"context"
	"testing"
	"time"

	"translation-backend/internal/errs"
	"translation-backend/internal/export"
	"translation-backend/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	mirror := newFakeMirror()
	jobs := env.jobs(&fakeEnqueuer{}, mirror)
	retention := NewRetentionService(env.exports, mirror, env.fs, env.cfg, env.logger)
	downloads := NewDownloadService(env.exports, mirror, env.fs, env.logger)

	rec, err := jobs.Dispatch(ctx, 5, env.fx.Project.ID, export.FormatJSON, nil)
	require.NoError(t, err)
	require.NoError(t, jobs.Run(ctx, rec.ID))

	// a synchronous download nobody tracks
	_, err = env.exporter.ExportProject(ctx, env.fx.Project.ID, export.FormatCSV, nil)
	require.NoError(t, err)
	require.Len(t, env.scratchDirs(t), 2)

	t.Run("should keep fresh artifacts", func(t *testing.T) {
		report, err := retention.Sweep(ctx, time.Now())
		require.NoError(t, err)
		assert.Equal(t, SweepReport{}, report)
		assert.Len(t, env.scratchDirs(t), 2)
	})

	t.Run("should remove expired artifacts but keep records", func(t *testing.T) {
		report, err := retention.Sweep(ctx, time.Now().Add(env.cfg.Retention+time.Hour))
		require.NoError(t, err)
		assert.Equal(t, SweepReport{Removed: 2}, report)
		assert.Empty(t, env.scratchDirs(t))
		assert.Empty(t, mirror.objects)

		stored, err := env.exports.FindByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExportStatusCompleted, stored.Status)

		_, _, err = downloads.Open(ctx, rec.ID, 5)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		_, err = downloads.PresignedURL(ctx, rec.ID, 5)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		report, err := retention.Sweep(ctx, time.Now().Add(env.cfg.Retention+time.Hour))
		require.NoError(t, err)
		assert.Equal(t, SweepReport{}, report)
	})
}

func TestSweepMissingRoot(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.cfg
	cfg.Root = "/nowhere"
	retention := NewRetentionService(env.exports, nil, afero.NewMemMapFs(), cfg, env.logger)

	report, err := retention.Sweep(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, SweepReport{}, report)
}
