package handlers

import (
	"time"

	"translation-backend/internal/models"
)

type ExportRequest struct {
	ProjectID uint   `json:"project_id" validate:"required" example:"1"`
	Format    string `json:"format" validate:"required,oneof=json csv" example:"json"`
	Languages []uint `json:"languages" validate:"omitempty,dive,required" example:"1,2"`
	Async     bool   `json:"async" example:"false"`
}

type DispatchResponse struct {
	Message  string `json:"message" example:"Export started"`
	Async    bool   `json:"async" example:"true"`
	ExportID uint   `json:"export_id" example:"12"`
}

type ExportListItem struct {
	ID           uint      `json:"id" example:"12"`
	ProjectName  string    `json:"project_name" example:"Demo Website"`
	Format       string    `json:"format" example:"json"`
	Status       string    `json:"status" example:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	FileName     string    `json:"file_name" example:"demo-website.zip"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

type ExportLinkResponse struct {
	URL string `json:"url"`
}

func toExportListItem(e models.Export) ExportListItem {
	item := ExportListItem{
		ID:           e.ID,
		Format:       e.Format,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		FileName:     e.FileName,
		ErrorMessage: e.ErrorMessage,
	}
	if e.Project != nil {
		item.ProjectName = e.Project.Name
	}
	return item
}
