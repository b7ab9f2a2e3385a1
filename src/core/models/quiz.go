package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Option is one answer choice of a question. Exactly one option per
// question carries IsCorrect=true; enforced at create/edit time.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is stored inline on the quiz row as part of the jsonb document.
type Question struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

type Quiz struct {
	ID        uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Title     string                         `gorm:"column:title;type:text;not null" json:"title"`
	Grade     string                         `gorm:"column:grade;type:text;not null" json:"grade"`
	Subject   string                         `gorm:"column:subject;type:text;not null" json:"subject"`
	Questions datatypes.JSONType[[]Question] `gorm:"column:questions;type:jsonb;not null" json:"questions"`
	CreatedAt time.Time                      `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time                      `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
