package handlers

import "translation-backend/internal/repository"

type TranslationItem struct {
	TranslationKeyID    uint    `json:"translation_key_id" validate:"required"`
	LanguageID          uint    `json:"language_id" validate:"required"`
	Text                *string `json:"text"`
	Status              *string `json:"status" validate:"omitempty,oneof=draft review final"`
	IsMachineTranslated *bool   `json:"is_machine_translated"`
}

type BulkTranslationRequest struct {
	Translations []TranslationItem `json:"translations" validate:"required,min=1,dive"`
}

func (r BulkTranslationRequest) rows() []repository.TranslationUpsert {
	rows := make([]repository.TranslationUpsert, len(r.Translations))
	for i, t := range r.Translations {
		rows[i] = repository.TranslationUpsert{
			TranslationKeyID:    t.TranslationKeyID,
			LanguageID:          t.LanguageID,
			Text:                t.Text,
			Status:              t.Status,
			IsMachineTranslated: t.IsMachineTranslated,
		}
	}
	return rows
}

type CopyTranslationsRequest struct {
	ProjectID        uint `json:"project_id" validate:"required"`
	SourceLanguageID uint `json:"source_language_id" validate:"required"`
	TargetLanguageID uint `json:"target_language_id" validate:"required,nefield=SourceLanguageID"`
	Overwrite        bool `json:"overwrite"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type CountResponse struct {
	Count int `json:"count"`
}
