package clock

import (
	"fmt"
	"time"
)

// BusinessTimeZone is the fixed timezone all business-day boundaries are
// computed in, regardless of where the server runs. Stored instants are
// always UTC.
const BusinessTimeZone = "America/Chicago"

// Clock resolves "now" and "today" against the business timezone and
// converts between stored UTC instants and displayed clock text.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New() (*Clock, error) {
	loc, err := time.LoadLocation(BusinessTimeZone)
	if err != nil {
		return nil, fmt.Errorf("load business timezone: %w", err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewWithNow substitutes the time source, for deterministic tests.
func NewWithNow(now func() time.Time) (*Clock, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	c.now = now
	return c, nil
}

// Now returns the current instant in the storage timezone (UTC).
func (c *Clock) Now() time.Time {
	return c.now().In(time.UTC)
}

// Today returns midnight of the current business-timezone date.
func (c *Clock) Today() time.Time {
	now := c.now().In(c.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// Display renders a stored instant as business-timezone clock text.
func (c *Clock) Display(t time.Time) string {
	return FormatClock(t.In(c.loc))
}

// At combines a business-timezone date with clock text and returns the
// storage instant. Seconds are not carried by the clock text, so a
// round-trip through Display holds only to minute precision.
func (c *Clock) At(date time.Time, clockText string) (time.Time, error) {
	t, err := ParseClock(clockText)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(c.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, c.loc).In(time.UTC), nil
}

// DayRange returns the UTC instants bounding the business day containing
// date: [start of day, start of next day).
func (c *Clock) DayRange(date time.Time) (time.Time, time.Time) {
	d := date.In(c.loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc)
	return start.In(time.UTC), start.AddDate(0, 0, 1).In(time.UTC)
}

// Date builds a business-timezone date from calendar components.
func (c *Clock) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc)
}

// ParseDate parses a yyyy-MM-dd string as a business-timezone date.
func (c *Clock) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrClockFormat, s)
	}
	return t, nil
}
