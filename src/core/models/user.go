package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	DisplayName      string     `gorm:"column:display_name;type:text;not null" json:"display_name"`
	Email            string     `gorm:"column:email;type:text;unique;not null" json:"email"`
	Password         string     `gorm:"column:password;type:text;not null" json:"-"`
	Grade            string     `gorm:"column:grade;type:text;not null" json:"grade"`
	PhotoURL         string     `gorm:"column:photo_url;type:text;not null;default:''" json:"photo_url"`
	PhotoSize        int64      `gorm:"column:photo_size;type:bigint;not null;default:0" json:"photo_size"`
	PhotoStoragePath string     `gorm:"column:photo_storage_path;type:text;not null;default:''" json:"photo_storage_path"`
	AccessExpiresAt  *time.Time `gorm:"column:access_expires_at;type:timestamp with time zone" json:"access_expires_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
