package model

import "time"

// HiddenUser marks a user as removed from active listings while their
// shift history stays intact. A user with recorded shifts is hidden
// instead of deleted so past reports keep referential integrity.
type HiddenUser struct {
	UserID     string    `gorm:"primaryKey;column:userId;type:varchar(36)" json:"userId"`
	DateHidden time.Time `gorm:"column:dateHidden;not null" json:"dateHidden"`
	HiddenBy   string    `gorm:"column:hiddenBy;type:varchar(120)" json:"hiddenBy"`
	Reason     string    `gorm:"column:reason;type:varchar(254)" json:"reason"`
}

func (HiddenUser) TableName() string {
	return "HiddenUsers"
}
