package model

import "time"

// Note is a free-text remark recorded during the day and echoed in the
// daily summary email.
type Note struct {
	ID            int       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Value         string    `gorm:"column:value;type:varchar(500);not null" json:"value"`
	DateSubmitted time.Time `gorm:"column:dateSubmitted;not null;index" json:"dateSubmitted"`
}

func (Note) TableName() string {
	return "Notes"
}
