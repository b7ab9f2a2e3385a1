package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is an admin announcement scoped to a grade, with an image and an
// optional external link.
type Post struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	Grade       string    `gorm:"column:grade;type:text;not null;index" json:"grade"`
	Link        string    `gorm:"column:link;type:text;not null;default:''" json:"link,omitempty"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null" json:"image_url"`
	ImagePath   string    `gorm:"column:image_path;type:text;not null;default:''" json:"image_path,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
