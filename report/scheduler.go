package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"timeclock.app/timeclock/clock"
)

// Scheduler fires the daily summary email at a fixed business-timezone
// time, e.g. "23:36". The send itself is Service's job; a day with no
// shifts is logged and skipped, not treated as a failure.
type Scheduler struct {
	reports *Service
	clk     *clock.Clock
	sendAt  string
}

func NewScheduler(reports *Service, clk *clock.Clock, sendAt string) (*Scheduler, error) {
	if _, err := time.Parse("15:04", sendAt); err != nil {
		return nil, fmt.Errorf("invalid send time %q: %w", sendAt, err)
	}
	return &Scheduler{reports: reports, clk: clk, sendAt: sendAt}, nil
}

// Run blocks until ctx is cancelled, sending the daily report once per
// business day.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		wait := time.Until(s.nextRun(s.clk.Now()))
		logrus.Infof("next daily summary email in %s", wait.Round(time.Second))

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		if err := s.reports.SendToday(ctx); err != nil {
			if errors.Is(err, ErrNoShifts) {
				logrus.Info("no shifts today, skipping daily summary email")
				continue
			}
			logrus.WithError(err).Error("daily summary email failed")
		}
	}
}

// nextRun returns the next occurrence of sendAt strictly after now. The
// instant is composed from wall-clock components so the send time stays at
// the configured hour on DST transition days.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	at, _ := time.Parse("15:04", s.sendAt)

	day := s.clk.Today()
	next := time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, day.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
