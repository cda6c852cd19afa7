package repository

import (
	"context"
	"testing"
	"time"

	"translation-backend/internal/database/dbtest"
	"translation-backend/internal/errs"
	"translation-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(projectID, userID uint) *models.Export {
	return &models.Export{
		ProjectID:   projectID,
		UserID:      userID,
		Format:      "json",
		LanguageIDs: []uint{1, 2},
		FileName:    "demo-website.zip",
	}
}

func TestExportRepositoryTransitions(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewExportRepository(db)

	t.Run("should create processing records", func(t *testing.T) {
		rec := newRecord(fx.Project.ID, 1)
		require.NoError(t, repo.Create(ctx, rec))

		got, err := repo.FindByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExportStatusProcessing, got.Status)
		assert.Equal(t, "", got.FilePath)
		assert.Equal(t, []uint{1, 2}, []uint(got.LanguageIDs))
		require.NotNil(t, got.Project)
		assert.Equal(t, "Demo Website", got.Project.Name)
	})

	t.Run("should complete once", func(t *testing.T) {
		rec := newRecord(fx.Project.ID, 1)
		require.NoError(t, repo.Create(ctx, rec))

		require.NoError(t, repo.MarkCompleted(ctx, rec.ID, "/exports/abc/translations.zip"))
		assert.ErrorIs(t, repo.MarkFailed(ctx, rec.ID, "late"), models.ErrInvalidTransition)
		assert.ErrorIs(t, repo.MarkCompleted(ctx, rec.ID, "/other"), models.ErrInvalidTransition)

		got, err := repo.FindByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExportStatusCompleted, got.Status)
		assert.Equal(t, "/exports/abc/translations.zip", got.FilePath)
		assert.Empty(t, got.ErrorMessage)
	})

	t.Run("should fail once", func(t *testing.T) {
		rec := newRecord(fx.Project.ID, 1)
		require.NoError(t, repo.Create(ctx, rec))

		require.NoError(t, repo.MarkFailed(ctx, rec.ID, "disk full"))
		assert.ErrorIs(t, repo.MarkCompleted(ctx, rec.ID, "/x"), models.ErrInvalidTransition)

		got, err := repo.FindByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExportStatusFailed, got.Status)
		assert.Equal(t, "disk full", got.ErrorMessage)
		assert.Equal(t, "", got.FilePath)
	})

	t.Run("should report unknown records", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 424242)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 424242), errs.ErrNotFound)
	})
}

func TestExportRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewExportRepository(db)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	older := newRecord(fx.Project.ID, 1)
	older.CreatedAt = base
	sameA := newRecord(fx.Project.ID, 1)
	sameA.CreatedAt = base.Add(time.Hour)
	sameB := newRecord(fx.Project.ID, 1)
	sameB.CreatedAt = base.Add(time.Hour)
	other := newRecord(fx.Project.ID, 2)
	for _, rec := range []*models.Export{older, sameA, sameB, other} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	records, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []uint{sameB.ID, sameA.ID, older.ID}, []uint{records[0].ID, records[1].ID, records[2].ID})
	assert.NotNil(t, records[0].Project)

	records, err = repo.ListByUser(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExportRepositoryRetentionQueries(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewExportRepository(db)

	done := newRecord(fx.Project.ID, 1)
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.MarkCompleted(ctx, done.ID, "/exports/a/translations.zip"))
	require.NoError(t, repo.SetObjectKey(ctx, done.ID, "exports/1/demo-website.zip"))

	pending := newRecord(fx.Project.ID, 1)
	require.NoError(t, repo.Create(ctx, pending))

	records, err := repo.ListCompletedBefore(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, done.ID, records[0].ID)
	assert.Equal(t, "exports/1/demo-website.zip", records[0].ObjectKey)

	records, err = repo.ListCompletedBefore(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, repo.ClearArtifact(ctx, done.ID))
	records, err = repo.ListCompletedBefore(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, records)

	got, err := repo.FindByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusCompleted, got.Status)
}
