package models

import "time"

// AccessControlSettings is a single global row. When IsRestricted is false
// every user has full access; when true, access is gated per user via
// User.AccessExpiresAt.
type AccessControlSettings struct {
	ID           int       `gorm:"column:id;type:int;primaryKey" json:"-"`
	IsRestricted bool      `gorm:"column:is_restricted;type:boolean;not null;default:false" json:"is_restricted"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AccessControlSettings) TableName() string {
	return "access_control_settings"
}
