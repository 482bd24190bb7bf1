package note

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/model"
)

type Service struct {
	db  *gorm.DB
	clk *clock.Clock
}

func NewService(db *gorm.DB, clk *clock.Clock) *Service {
	return &Service{db: db, clk: clk}
}

// Record stores a note stamped with the current instant. Blank notes are
// silently ignored.
func (s *Service) Record(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n := &model.Note{Value: value, DateSubmitted: s.clk.Now()}
	if err := s.db.Create(n).Error; err != nil {
		return fmt.Errorf("record note: %w", err)
	}
	return nil
}

// All returns every note, newest last.
func (s *Service) All() ([]model.Note, error) {
	var notes []model.Note
	if err := s.db.Order("dateSubmitted").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// ForDate returns the notes submitted on the given business date.
func (s *Service) ForDate(date time.Time) ([]model.Note, error) {
	from, to := s.clk.DayRange(date)

	var notes []model.Note
	err := s.db.Where("dateSubmitted >= ? AND dateSubmitted < ?", from, to).
		Order("dateSubmitted").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("notes for %s: %w", date.Format("2006-01-02"), err)
	}
	return notes, nil
}
