package models

import (
	"time"

	"github.com/google/uuid"
)

// Material types. Videos are external links, the rest are uploaded files.
const (
	MaterialTypeNotes     = "notes"
	MaterialTypeVideo     = "video"
	MaterialTypePastPaper = "past-paper"
)

type Material struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	Grade       string    `gorm:"column:grade;type:text;not null;index" json:"grade"`
	Subject     string    `gorm:"column:subject;type:text;not null" json:"subject"`
	Type        string    `gorm:"column:type;type:text;not null" json:"type"`
	FileURL     string    `gorm:"column:file_url;type:text;not null" json:"file_url"`
	FilePath    string    `gorm:"column:file_path;type:text;not null;default:''" json:"file_path,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Material) TableName() string {
	return "study_materials"
}
