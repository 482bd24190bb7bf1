package model

import "time"

// Shift is one continuous work session for one worker. Name is a snapshot
// of the worker's name at clock-in; renaming a worker later never rewrites
// past shifts. A nil ClockOut means the shift is still open, and
// TimeWorked is present exactly when ClockOut is.
type Shift struct {
	ShiftID    int        `gorm:"primaryKey;autoIncrement;column:shiftId" json:"shiftId"`
	UserID     string     `gorm:"column:userId;type:varchar(36);not null;index" json:"userId"`
	Name       string     `gorm:"column:name;type:varchar(120);not null" json:"name"`
	ClockIn    time.Time  `gorm:"column:clockIn;not null;index" json:"-"`
	ClockOut   *time.Time `gorm:"column:clockOut" json:"-"`
	TimeWorked string     `gorm:"column:timeWorked;type:varchar(20)" json:"timeWorked"`
}

func (Shift) TableName() string {
	return "Shifts"
}

// Open reports whether the shift has not been clocked out yet.
func (s *Shift) Open() bool {
	return s.ClockOut == nil
}
