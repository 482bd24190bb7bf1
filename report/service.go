package report

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/infrastructure/communication"
	"timeclock.app/timeclock/note"
	"timeclock.app/timeclock/shift"
)

// Mailer delivers a finished report. Transport failures are surfaced to
// the caller; there is no retry at this layer.
type Mailer interface {
	Send(ctx context.Context, email *communication.Email) error
}

// Notifier receives fire-and-forget dispatch notifications.
type Notifier interface {
	Info(message string) error
	Error(message string) error
}

type Service struct {
	shifts   *shift.Service
	notes    *note.Service
	builder  *Builder
	mailer   Mailer
	notifier Notifier
	clk      *clock.Clock

	from       string
	recipients []string
}

func NewService(shifts *shift.Service, notes *note.Service, builder *Builder,
	mailer Mailer, notifier Notifier, clk *clock.Clock, from string, recipients []string) *Service {
	return &Service{
		shifts:     shifts,
		notes:      notes,
		builder:    builder,
		mailer:     mailer,
		notifier:   notifier,
		clk:        clk,
		from:       from,
		recipients: recipients,
	}
}

// Spreadsheet builds the timesheet for a date and returns its attachment
// name alongside the file bytes.
func (s *Service) Spreadsheet(date time.Time) (string, []byte, error) {
	rows, err := s.shifts.RowsByDate(date)
	if err != nil {
		return "", nil, err
	}
	file, err := s.builder.Build(date, rows)
	if err != nil {
		return "", nil, err
	}
	return s.builder.FileName(date), file, nil
}

// SendDaily emails the timesheet for a date together with the day's
// notes. The mail transport error, if any, is propagated unretried.
func (s *Service) SendDaily(ctx context.Context, date time.Time) error {
	if s.mailer == nil {
		return errors.New("mail dispatch is not configured")
	}

	filename, file, err := s.Spreadsheet(date)
	if err != nil {
		return err
	}

	notes, err := s.notes.ForDate(date)
	if err != nil {
		return err
	}
	noteValues := make([]string, len(notes))
	for i, n := range notes {
		noteValues[i] = n.Value
	}

	subject := clock.FileNameDate(date) + " Timesheet"
	email := &communication.Email{
		From:    s.from,
		To:      s.recipients,
		Subject: subject,
		HTML:    buildBody(noteValues),
		Attachments: []communication.Attachment{{
			Filename:    filename,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     file,
		}},
	}

	if err := s.mailer.Send(ctx, email); err != nil {
		s.notify(false, fmt.Sprintf("timesheet email for %s failed: %v", date.Format("2006-01-02"), err))
		return fmt.Errorf("send timesheet email: %w", err)
	}

	logrus.Infof("daily summary email sent for %s (%s)", date.Format("2006-01-02"), filename)
	s.notify(true, fmt.Sprintf("timesheet %s sent to %s", filename, strings.Join(s.recipients, ", ")))
	return nil
}

// SendToday emails the timesheet for the current business date.
func (s *Service) SendToday(ctx context.Context) error {
	return s.SendDaily(ctx, s.clk.Today())
}

func (s *Service) notify(ok bool, message string) {
	if s.notifier == nil {
		return
	}
	var err error
	if ok {
		err = s.notifier.Info(message)
	} else {
		err = s.notifier.Error(message)
	}
	if err != nil {
		logrus.WithError(err).Warn("dispatch notification failed")
	}
}

func buildBody(notes []string) string {
	var sb strings.Builder
	sb.WriteString("<p>Attached is today's Time-clock</p>")
	if len(notes) > 0 {
		sb.WriteString("<h4>Notes:</h4><ul>")
		for _, n := range notes {
			sb.WriteString("<li>")
			sb.WriteString(html.EscapeString(n))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
	}
	return sb.String()
}
