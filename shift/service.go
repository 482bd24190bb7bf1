// Package shift owns the lifecycle of a work session: open at clock-in,
// closed at clock-out, optionally rewritten by an administrative edit.
package shift

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/model"
)

// UserShiftRow is a shift joined with the worker's contact fields, one
// reporting row of the daily timesheet.
type UserShiftRow struct {
	ShiftID        int        `gorm:"column:shiftId" json:"shiftId"`
	UserID         string     `gorm:"column:userId" json:"userId"`
	Name           string     `gorm:"column:name" json:"name"`
	PhoneNumber    string     `gorm:"column:phoneNumber" json:"phoneNumber"`
	Email          string     `gorm:"column:email" json:"email"`
	MailingAddress string     `gorm:"column:physicalMailingAddress" json:"mailingAddress"`
	ClockIn        time.Time  `gorm:"column:clockIn" json:"-"`
	ClockOut       *time.Time `gorm:"column:clockOut" json:"-"`
	TimeWorked     string     `gorm:"column:timeWorked" json:"timeWorked"`
}

type Service struct {
	db  *gorm.DB
	clk *clock.Clock
}

func NewService(db *gorm.DB, clk *clock.Clock) *Service {
	return &Service{db: db, clk: clk}
}

// Start opens a new shift for the user at the current instant. The user's
// name is copied onto the shift so later renames never rewrite history.
// No check is made for an already-open shift: concurrent open shifts per
// worker are permitted.
func (s *Service) Start(user *model.User) (*model.Shift, error) {
	shift := &model.Shift{
		UserID:  user.UserID,
		Name:    user.Name,
		ClockIn: s.clk.Now(),
	}
	if err := s.db.Create(shift).Error; err != nil {
		return nil, fmt.Errorf("start shift for %s: %w", user.UserID, err)
	}
	logrus.Infof("%s clocked in (shift %d)", shift.Name, shift.ShiftID)
	return shift, nil
}

// ClockOut closes a shift. The caller supplies both clock texts: workers
// state the time they actually left rather than the moment the request
// lands. The elapsed time is computed with the overnight-tolerant rule and
// the stated end time is resolved against today's business date.
func (s *Service) ClockOut(shiftID int, clockInText, clockOutText string) (string, error) {
	timeWorked, err := clock.TimeWorked(clockInText, clockOutText)
	if err != nil {
		return "", err
	}
	shift, err := s.Find(shiftID)
	if err != nil {
		return "", err
	}

	// The stated end time is anchored to the business day the shift was
	// opened on, not the day the request arrives: an overnight shift is
	// normally closed shortly after midnight. An end time earlier on the
	// clock than the start means the shift ran past midnight, so the stored
	// instant lands on the day after clock-in. Both texts were validated by
	// TimeWorked above.
	clockOut, err := s.clk.At(shift.ClockIn, clockOutText)
	if err != nil {
		return "", err
	}
	in, _ := clock.ParseClock(clockInText)
	out, _ := clock.ParseClock(clockOutText)
	if out.Before(in) {
		clockOut = clockOut.Add(24 * time.Hour)
	}

	logrus.Infof("shift %d clocking out, worked [%s - %s] = %s", shiftID, clockInText, clockOutText, timeWorked)

	err = s.db.Model(&model.Shift{}).
		Where("shiftId = ?", shiftID).
		Updates(map[string]interface{}{
			"clockOut":   clockOut,
			"timeWorked": timeWorked,
		}).Error
	if err != nil {
		return "", fmt.Errorf("close shift %d: %w", shiftID, err)
	}
	return timeWorked, nil
}

// Update rewrites both timestamps of a shift from clock texts resolved
// against today's business date. Unlike ClockOut this path is strict: a
// clock-out not after clock-in is rejected rather than rolled forward. An
// empty clock-out text clears the clock-out and reopens the shift.
func (s *Service) Update(shiftID int, clockInText, clockOutText string) (string, error) {
	today := s.clk.Today()

	clockIn, err := s.clk.At(today, clockInText)
	if err != nil {
		return "", err
	}

	var clockOut *time.Time
	if strings.TrimSpace(clockOutText) != "" {
		out, err := s.clk.At(today, clockOutText)
		if err != nil {
			return "", err
		}
		clockOut = &out
	}

	timeWorked, err := clock.TimeWorkedBetween(clockIn, clockOut)
	if err != nil {
		return "", err
	}

	err = s.db.Model(&model.Shift{}).
		Where("shiftId = ?", shiftID).
		Updates(map[string]interface{}{
			"clockIn":    clockIn,
			"clockOut":   clockOut,
			"timeWorked": timeWorked,
		}).Error
	if err != nil {
		return "", fmt.Errorf("update shift %d: %w", shiftID, err)
	}
	return timeWorked, nil
}

// Remove hard-deletes a shift. Removing an id that does not exist is not
// an error, so the call is idempotent.
func (s *Service) Remove(shiftID int) error {
	logrus.Infof("deleting shift %d", shiftID)
	if err := s.db.Delete(&model.Shift{}, "shiftId = ?", shiftID).Error; err != nil {
		return fmt.Errorf("remove shift %d: %w", shiftID, err)
	}
	return nil
}

// PurgeBefore deletes every shift whose clock-in falls strictly before the
// business day containing date, and returns how many were removed. The
// boundary is responsible for confirming first; see CountBefore.
func (s *Service) PurgeBefore(date time.Time) (int64, error) {
	from, _ := s.clk.DayRange(date)

	logrus.Infof("deleting all shifts prior to %s", date.Format("2006-01-02"))
	res := s.db.Where("clockIn < ?", from).Delete(&model.Shift{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge shifts before %s: %w", date.Format("2006-01-02"), res.Error)
	}
	return res.RowsAffected, nil
}

// CountBefore reports how many shifts PurgeBefore would remove.
func (s *Service) CountBefore(date time.Time) (int64, error) {
	from, _ := s.clk.DayRange(date)

	var count int64
	err := s.db.Model(&model.Shift{}).Where("clockIn < ?", from).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count shifts before %s: %w", date.Format("2006-01-02"), err)
	}
	return count, nil
}

// ShiftsByDate returns the shifts clocked in on the given business date,
// ordered by clock-in.
func (s *Service) ShiftsByDate(date time.Time) ([]model.Shift, error) {
	from, to := s.clk.DayRange(date)

	var shifts []model.Shift
	err := s.db.Where("clockIn >= ? AND clockIn < ?", from, to).
		Order("clockIn").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("shifts for %s: %w", date.Format("2006-01-02"), err)
	}
	return shifts, nil
}

// RowsByDate returns the day's shifts joined with user contact fields,
// ordered by clock-in.
func (s *Service) RowsByDate(date time.Time) ([]UserShiftRow, error) {
	from, to := s.clk.DayRange(date)

	var rows []UserShiftRow
	err := s.db.Table("Shifts").
		Select(`Shifts.shiftId, Shifts.userId, Shifts.name, Shifts.clockIn,
			Shifts.clockOut, Shifts.timeWorked, Users.phoneNumber, Users.email,
			Users.physicalMailingAddress`).
		Joins("JOIN Users ON Users.userId = Shifts.userId").
		Where("Shifts.clockIn >= ? AND Shifts.clockIn < ?", from, to).
		Order("Shifts.clockIn").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("shift rows for %s: %w", date.Format("2006-01-02"), err)
	}
	return rows, nil
}

// Find fetches one shift by id.
func (s *Service) Find(shiftID int) (*model.Shift, error) {
	var shift model.Shift
	if err := s.db.First(&shift, "shiftId = ?", shiftID).Error; err != nil {
		return nil, fmt.Errorf("find shift %d: %w", shiftID, err)
	}
	return &shift, nil
}

// HasShifts reports whether a user has any recorded shifts.
func (s *Service) HasShifts(userID string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Shift{}).Where("userId = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count shifts for %s: %w", userID, err)
	}
	return count > 0, nil
}
