package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

const (
	ExportStatusProcessing = "processing"
	ExportStatusCompleted  = "completed"
	ExportStatusFailed     = "failed"
)

var ErrInvalidTransition = errors.New("export record is already in a terminal state")

// Export tracks one export request from dispatch to completion or failure.
// It is the only state shared between the API and the worker.
type Export struct {
	ID           uint                      `gorm:"primaryKey" json:"id" example:"1"`
	ProjectID    uint                      `gorm:"index:idx_export_lookup;not null" json:"project_id"`
	UserID       uint                      `gorm:"index:idx_export_lookup;not null" json:"user_id"`
	Format       string                    `gorm:"not null;size:16" json:"format" example:"json"`
	LanguageIDs  datatypes.JSONSlice[uint] `gorm:"column:language_ids" json:"language_ids"`
	FilePath     string                    `gorm:"not null;default:''" json:"-"`
	FileName     string                    `gorm:"not null" json:"file_name" example:"demo-website.zip"`
	Status       string                    `gorm:"index:idx_export_lookup;not null;default:processing;size:16" json:"status" example:"processing"`
	ErrorMessage string                    `gorm:"type:text" json:"error_message,omitempty"`
	ObjectKey    string                    `json:"-"`
	Project      *Project                  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedAt    time.Time                 `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

func (Export) TableName() string {
	return "exports"
}

func (e *Export) IsTerminal() bool {
	return e.Status == ExportStatusCompleted || e.Status == ExportStatusFailed
}
