package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt is one user's run through a quiz. Answers maps question index
// to the chosen option index; partial while in progress. A user may hold at
// most one incomplete attempt per quiz, and any number of completed ones.
type QuizAttempt struct {
	ID          uuid.UUID                        `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	UserID      uuid.UUID                        `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	QuizID      uuid.UUID                        `gorm:"column:quiz_id;type:uuid;not null;index" json:"quiz_id"`
	Answers     datatypes.JSONType[map[int]int]  `gorm:"column:answers;type:jsonb;not null" json:"answers"`
	Score       int                              `gorm:"column:score;type:int;not null;default:0" json:"score"`
	Completed   bool                             `gorm:"column:completed;type:boolean;not null;default:false" json:"completed"`
	StartedAt   *time.Time                       `gorm:"column:started_at;type:timestamp with time zone" json:"started_at,omitempty"`
	CompletedAt *time.Time                       `gorm:"column:completed_at;type:timestamp with time zone" json:"completed_at,omitempty"`
	CreatedAt   time.Time                        `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                        `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
