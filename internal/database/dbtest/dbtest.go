// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"translation-backend/internal/config"
	"translation-backend/internal/database"
	"translation-backend/internal/models"

	"github.com/stretchr/testify/require"
)

// New returns a fresh sqlite database private to the test.
func New(t *testing.T) *database.Database {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		SQLitePath:      fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// Fixture is the demo website project: English and French attached in that
// order, German known but not attached.
type Fixture struct {
	Project *models.Project
	English *models.Language
	French  *models.Language
	German  *models.Language
	Home    *models.TranslationKey
	Footer  *models.TranslationKey
}

func Seed(t *testing.T, db *database.Database) *Fixture {
	t.Helper()

	org := &models.Organization{Name: "Acme"}
	require.NoError(t, db.Create(org).Error)

	en := &models.Language{Code: "en", Name: "English"}
	fr := &models.Language{Code: "fr", Name: "French"}
	de := &models.Language{Code: "de", Name: "German"}
	require.NoError(t, db.Create(en).Error)
	require.NoError(t, db.Create(fr).Error)
	require.NoError(t, db.Create(de).Error)

	project := &models.Project{
		Name:              "Demo Website",
		OrganizationID:    org.ID,
		PrimaryLanguageID: &en.ID,
		ProjectLanguages: []models.ProjectLanguage{
			{LanguageID: en.ID},
			{LanguageID: fr.ID},
		},
	}
	require.NoError(t, db.Create(project).Error)

	home := AddKey(t, db, project.ID, "nav.home", map[uint]string{en.ID: "Home", fr.ID: "Accueil"})
	footer := AddKey(t, db, project.ID, "footer.copyright", map[uint]string{en.ID: "© 2025", fr.ID: "© 2025 (fr)"})

	return &Fixture{
		Project: project,
		English: en,
		French:  fr,
		German:  de,
		Home:    home,
		Footer:  footer,
	}
}

// AddKey creates a key with one translation per language id. Translations are
// inserted in language id order so the result does not depend on map order.
func AddKey(t *testing.T, db *database.Database, projectID uint, key string, texts map[uint]string) *models.TranslationKey {
	t.Helper()

	tk := &models.TranslationKey{ProjectID: projectID, Key: key}
	require.NoError(t, db.Create(tk).Error)

	ids := make([]uint, 0, len(texts))
	for id := range texts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		text := texts[id]
		require.NoError(t, db.Create(&models.Translation{
			TranslationKeyID: tk.ID,
			LanguageID:       id,
			Text:             &text,
			Status:           models.TranslationStatusFinal,
		}).Error)
	}
	return tk
}
