package models

import (
	"errors"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrPrimaryLanguageNotAttached = errors.New("primary language must be one of the project languages")

type Project struct {
	ID                uint              `gorm:"primaryKey" json:"id" example:"1"`
	Name              string            `gorm:"not null" json:"name" example:"Demo Website"`
	Slug              string            `gorm:"uniqueIndex;not null" json:"slug" example:"demo-website"`
	OrganizationID    uint              `gorm:"index;not null" json:"organization_id"`
	Organization      *Organization     `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	PrimaryLanguageID *uint             `gorm:"index" json:"primary_language_id"`
	PrimaryLanguage   *Language         `gorm:"foreignKey:PrimaryLanguageID" json:"primary_language,omitempty"`
	ProjectLanguages  []ProjectLanguage `gorm:"foreignKey:ProjectID" json:"project_languages,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// BeforeCreate derives the slug from the name when none was supplied.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}

// BeforeSave keeps the slug in step with a renamed project unless the slug
// was changed along with it, and rejects a primary language that is not
// attached to the project.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.ID != 0 {
		if err := p.followName(tx); err != nil {
			return err
		}
	}
	if err := p.Validate(); err == nil || p.ID == 0 {
		return err
	}

	// attachments not loaded on this value; ask the database
	var count int64
	err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&ProjectLanguage{}).
		Where("project_id = ? AND language_id = ?", p.ID, *p.PrimaryLanguageID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPrimaryLanguageNotAttached
	}
	return nil
}

func (p *Project) followName(tx *gorm.DB) error {
	var stored Project
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("name", "slug").
		First(&stored, p.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stored.Name != p.Name && stored.Slug == p.Slug {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}

// Validate checks the primary language against the loaded ProjectLanguages.
func (p *Project) Validate() error {
	if p.PrimaryLanguageID == nil {
		return nil
	}
	for _, pl := range p.ProjectLanguages {
		if pl.LanguageID == *p.PrimaryLanguageID {
			return nil
		}
	}
	return ErrPrimaryLanguageNotAttached
}

// ProjectLanguage is the join row between a project and one of its languages.
type ProjectLanguage struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProjectID          uint      `gorm:"uniqueIndex:idx_project_language;not null" json:"project_id"`
	LanguageID         uint      `gorm:"uniqueIndex:idx_project_language;not null" json:"language_id"`
	FallbackLanguageID *uint     `json:"fallback_language_id"`
	Language           *Language `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	FallbackLanguage   *Language `gorm:"foreignKey:FallbackLanguageID" json:"fallback_language,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (ProjectLanguage) TableName() string {
	return "project_languages"
}
