package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 14:30:45 UTC is 09:30:45 in America/Chicago (CDT, UTC-5).
var fixedNow = time.Date(2025, 3, 10, 14, 30, 45, 0, time.UTC)

func fixedClock(t *testing.T) *Clock {
	t.Helper()
	c, err := NewWithNow(func() time.Time { return fixedNow })
	require.NoError(t, err)
	return c
}

func TestNowIsUTC(t *testing.T) {
	c := fixedClock(t)

	now := c.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.True(t, now.Equal(fixedNow))
}

func TestToday(t *testing.T) {
	c := fixedClock(t)

	today := c.Today()
	assert.Equal(t, 2025, today.Year())
	assert.Equal(t, time.March, today.Month())
	assert.Equal(t, 10, today.Day())
	assert.Equal(t, 0, today.Hour())
}

func TestTodayCrossesDateLine(t *testing.T) {
	// 03:30 UTC is still the previous evening in Chicago.
	lateUTC := time.Date(2025, 3, 11, 3, 30, 0, 0, time.UTC)
	c, err := NewWithNow(func() time.Time { return lateUTC })
	require.NoError(t, err)

	assert.Equal(t, 10, c.Today().Day())
}

func TestDisplay(t *testing.T) {
	c := fixedClock(t)

	assert.Equal(t, "9:30 AM", c.Display(fixedNow))
}

func TestAt(t *testing.T) {
	c := fixedClock(t)

	instant, err := c.At(c.Today(), "9:30 AM")
	require.NoError(t, err)

	assert.Equal(t, time.UTC, instant.Location())
	// Seconds are not carried by clock text.
	assert.True(t, instant.Equal(fixedNow.Truncate(time.Minute)))
}

func TestAtRejectsBadText(t *testing.T) {
	c := fixedClock(t)

	_, err := c.At(c.Today(), "26:00")
	assert.ErrorIs(t, err, ErrClockFormat)
}

func TestDisplayRoundTrip(t *testing.T) {
	c := fixedClock(t)
	date := c.Date(2025, time.June, 15)

	first, err := c.At(date, "9:05 AM")
	require.NoError(t, err)

	again, err := c.At(date, c.Display(first))
	require.NoError(t, err)

	assert.True(t, first.Equal(again))
}

func TestDayRange(t *testing.T) {
	c := fixedClock(t)
	date := c.Date(2025, time.March, 10)

	from, to := c.DayRange(date)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
	assert.True(t, from.Before(fixedNow))
	assert.True(t, to.After(fixedNow))
}

func TestParseDate(t *testing.T) {
	c := fixedClock(t)

	date, err := c.ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 10, date.Day())

	_, err = c.ParseDate("03/10/2025")
	assert.ErrorIs(t, err, ErrClockFormat)
}
