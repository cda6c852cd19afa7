package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{ExportStatusProcessing, false},
		{ExportStatusCompleted, true},
		{ExportStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			e := &Export{Status: tt.status}
			assert.Equal(t, tt.want, e.IsTerminal())
		})
	}
}

func TestProjectSlugAndValidation(t *testing.T) {
	p := &Project{Name: "Demo Website"}
	assert.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, "demo-website", p.Slug)

	explicit := &Project{Name: "Marketing Site", Slug: "mkt"}
	assert.NoError(t, explicit.BeforeCreate(nil))
	assert.Equal(t, "mkt", explicit.Slug)

	primary := uint(2)
	p.PrimaryLanguageID = &primary
	p.ProjectLanguages = []ProjectLanguage{{LanguageID: 1}}
	assert.ErrorIs(t, p.Validate(), ErrPrimaryLanguageNotAttached)
	assert.ErrorIs(t, p.BeforeSave(nil), ErrPrimaryLanguageNotAttached)

	p.ProjectLanguages = append(p.ProjectLanguages, ProjectLanguage{LanguageID: 2})
	assert.NoError(t, p.Validate())
	assert.NoError(t, p.BeforeSave(nil))
}
