package models

import "time"

// CareerTip is the single motivational tip shown on the dashboard,
// editable from the admin panel.
type CareerTip struct {
	ID        int       `gorm:"column:id;type:int;primaryKey" json:"-"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	Author    string    `gorm:"column:author;type:text;not null" json:"author"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CareerTip) TableName() string {
	return "career_tips"
}
