package models

import "time"

const (
	TranslationStatusDraft  = "draft"
	TranslationStatusReview = "review"
	TranslationStatusFinal  = "final"
)

type TranslationKey struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ProjectID     uint          `gorm:"uniqueIndex:idx_project_key;index:idx_project_group;not null" json:"project_id"`
	Key           string        `gorm:"uniqueIndex:idx_project_key;not null" json:"key" example:"nav.home"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
	Group         *string       `gorm:"column:group_name;index:idx_project_group" json:"group,omitempty"`
	IsPlaceholder bool          `gorm:"not null;default:false" json:"is_placeholder"`
	Translations  []Translation `gorm:"foreignKey:TranslationKeyID" json:"translations,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (TranslationKey) TableName() string {
	return "translation_keys"
}

// GroupName returns the group label or an empty string.
func (k *TranslationKey) GroupName() string {
	if k.Group == nil {
		return ""
	}
	return *k.Group
}

type Translation struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	TranslationKeyID    uint            `gorm:"uniqueIndex:idx_key_language;not null" json:"translation_key_id"`
	LanguageID          uint            `gorm:"uniqueIndex:idx_key_language;index;not null" json:"language_id"`
	Text                *string         `gorm:"type:text" json:"text"`
	IsMachineTranslated bool            `gorm:"not null;default:false" json:"is_machine_translated"`
	Status              string          `gorm:"not null;default:draft;size:16" json:"status"`
	UpdatedBy           *uint           `json:"updated_by"`
	TranslationKey      *TranslationKey `gorm:"foreignKey:TranslationKeyID" json:"translation_key,omitempty"`
	Language            *Language       `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (Translation) TableName() string {
	return "translations"
}

func IsValidTranslationStatus(status string) bool {
	switch status {
	case TranslationStatusDraft, TranslationStatusReview, TranslationStatusFinal:
		return true
	}
	return false
}
