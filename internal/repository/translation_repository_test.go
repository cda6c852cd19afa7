package repository

import (
	"context"
	"testing"

	"translation-backend/internal/database/dbtest"
	"translation-backend/internal/errs"
	"translation-backend/internal/export"
	"translation-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFetchForExport(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewTranslationRepository(db)

	t.Run("should return keys in creation order with texts per code", func(t *testing.T) {
		entries, err := repo.FetchForExport(ctx, fx.Project.ID, []uint{fx.English.ID, fx.French.ID})
		require.NoError(t, err)

		assert.Equal(t, []export.Entry{
			{Key: "nav.home", Texts: map[string]string{"en": "Home", "fr": "Accueil"}},
			{Key: "footer.copyright", Texts: map[string]string{"en": "© 2025", "fr": "© 2025 (fr)"}},
		}, entries)
	})

	t.Run("should only include requested languages", func(t *testing.T) {
		entries, err := repo.FetchForExport(ctx, fx.Project.ID, []uint{fx.French.ID})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, map[string]string{"fr": "Accueil"}, entries[0].Texts)
	})

	t.Run("should skip keys without translations in the languages", func(t *testing.T) {
		entries, err := repo.FetchForExport(ctx, fx.Project.ID, []uint{fx.German.ID})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should use the project languages when none are given", func(t *testing.T) {
		entries, err := repo.FetchForExport(ctx, fx.Project.ID, nil)
		require.NoError(t, err)

		assert.Equal(t, []export.Entry{
			{Key: "nav.home", Texts: map[string]string{"en": "Home", "fr": "Accueil"}},
			{Key: "footer.copyright", Texts: map[string]string{"en": "© 2025", "fr": "© 2025 (fr)"}},
		}, entries)
	})

	t.Run("should report unknown projects", func(t *testing.T) {
		_, err := repo.FetchForExport(ctx, 999, nil)
		assert.ErrorIs(t, err, errs.ErrNotFound)

		_, err = repo.FetchForExport(ctx, 999, []uint{fx.English.ID})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("should map null text to a missing entry", func(t *testing.T) {
		tk := &models.TranslationKey{ProjectID: fx.Project.ID, Key: "empty", Group: strPtr("misc")}
		require.NoError(t, db.Create(tk).Error)
		require.NoError(t, db.Create(&models.Translation{TranslationKeyID: tk.ID, LanguageID: fx.English.ID}).Error)

		entries, err := repo.FetchForExport(ctx, fx.Project.ID, []uint{fx.English.ID})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		last := entries[2]
		assert.Equal(t, "empty", last.Key)
		assert.Equal(t, "misc", last.Group)
		assert.Equal(t, "", last.Text("en"))
	})
}

func TestBulkUpsert(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewTranslationRepository(db)

	t.Run("should update existing rows and create new ones", func(t *testing.T) {
		count, err := repo.BulkUpsert(ctx, []TranslationUpsert{
			{TranslationKeyID: fx.Home.ID, LanguageID: fx.French.ID, Text: strPtr("Maison")},
			{TranslationKeyID: fx.Home.ID, LanguageID: fx.German.ID, Text: strPtr("Startseite")},
		}, 7)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		fr, err := repo.FindByKeyAndLanguage(ctx, fx.Home.ID, fx.French.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maison", *fr.Text)
		assert.Equal(t, models.TranslationStatusFinal, fr.Status)
		require.NotNil(t, fr.UpdatedBy)
		assert.Equal(t, uint(7), *fr.UpdatedBy)

		de, err := repo.FindByKeyAndLanguage(ctx, fx.Home.ID, fx.German.ID)
		require.NoError(t, err)
		require.NotNil(t, de)
		assert.Equal(t, models.TranslationStatusDraft, de.Status)
	})

	t.Run("should roll back every row when one fails", func(t *testing.T) {
		_, err := repo.BulkUpsert(ctx, []TranslationUpsert{
			{TranslationKeyID: fx.Footer.ID, LanguageID: fx.German.ID, Text: strPtr("Impressum")},
			{TranslationKeyID: 9999, LanguageID: fx.German.ID, Text: strPtr("x")},
		}, 7)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNotFound)

		de, err := repo.FindByKeyAndLanguage(ctx, fx.Footer.ID, fx.German.ID)
		require.NoError(t, err)
		assert.Nil(t, de)
	})
}

func TestCopyBetweenLanguages(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewTranslationRepository(db)

	t.Run("should copy into an empty language as drafts", func(t *testing.T) {
		count, err := repo.CopyBetweenLanguages(ctx, fx.Project.ID, fx.English.ID, fx.German.ID, false, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		de, err := repo.FindByKeyAndLanguage(ctx, fx.Home.ID, fx.German.ID)
		require.NoError(t, err)
		assert.Equal(t, "Home", *de.Text)
		assert.Equal(t, models.TranslationStatusDraft, de.Status)
		assert.False(t, de.IsMachineTranslated)
	})

	t.Run("should keep existing targets without overwrite", func(t *testing.T) {
		count, err := repo.CopyBetweenLanguages(ctx, fx.Project.ID, fx.English.ID, fx.French.ID, false, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		fr, err := repo.FindByKeyAndLanguage(ctx, fx.Home.ID, fx.French.ID)
		require.NoError(t, err)
		assert.Equal(t, "Accueil", *fr.Text)
	})

	t.Run("should replace existing targets with overwrite", func(t *testing.T) {
		count, err := repo.CopyBetweenLanguages(ctx, fx.Project.ID, fx.English.ID, fx.French.ID, true, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		fr, err := repo.FindByKeyAndLanguage(ctx, fx.Home.ID, fx.French.ID)
		require.NoError(t, err)
		assert.Equal(t, "Home", *fr.Text)
		assert.Equal(t, models.TranslationStatusDraft, fr.Status)
	})
}

func TestMissingTranslations(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewTranslationRepository(db)

	dbtest.AddKey(t, db, fx.Project.ID, "nav.about", map[uint]string{fx.English.ID: "About"})
	require.NoError(t, repo.CreateKey(ctx, &models.TranslationKey{
		ProjectID:     fx.Project.ID,
		Key:           "_group_marketing",
		Group:         strPtr("Marketing"),
		IsPlaceholder: true,
	}))

	missing, err := repo.MissingTranslations(ctx, fx.Project.ID, fx.French.ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "nav.about", missing[0].Key)

	missing, err = repo.MissingTranslations(ctx, fx.Project.ID, fx.German.ID)
	require.NoError(t, err)
	assert.Len(t, missing, 3)
}

func TestFindKey(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	fx := dbtest.Seed(t, db)
	repo := NewTranslationRepository(db)

	tk, err := repo.FindKey(ctx, fx.Project.ID, "nav.home")
	require.NoError(t, err)
	assert.Equal(t, fx.Home.ID, tk.ID)

	_, err = repo.FindKey(ctx, fx.Project.ID, "nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
