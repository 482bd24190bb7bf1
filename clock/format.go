package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the 12-hour clock text format used everywhere a time of day
// is shown to or supplied by a person, e.g. "9:05 AM".
const Layout = "3:04 PM"

// ErrClockFormat is returned when clock text cannot be parsed.
var ErrClockFormat = errors.New("invalid clock format")

// ParseClock parses clock text like "9:05 AM". Case and surrounding
// whitespace are tolerated. Only the hour and minute of the result are
// meaningful.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrClockFormat, s)
	}
	return t, nil
}

// FormatClock renders a time of day as clock text.
func FormatClock(t time.Time) string {
	return t.Format(Layout)
}

// FileNameDate formats a date for use in generated file names,
// e.g. "Jan5th2025".
func FileNameDate(date time.Time) string {
	return date.Format("Jan") + dayOfMonthSuffix(date.Day()) + date.Format("2006")
}

func dayOfMonthSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return fmt.Sprintf("%dth", day)
	}
	switch day % 10 {
	case 1:
		return fmt.Sprintf("%dst", day)
	case 2:
		return fmt.Sprintf("%dnd", day)
	case 3:
		return fmt.Sprintf("%drd", day)
	default:
		return fmt.Sprintf("%dth", day)
	}
}
