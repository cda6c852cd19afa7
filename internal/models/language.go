package models

import "time"

type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null;size:10" json:"code"` // ISO-like code (e.g., 'en', 'fr-FR')
	Name      string    `gorm:"not null" json:"name"`                     // Display name (e.g., 'English')
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Language) TableName() string {
	return "languages"
}
