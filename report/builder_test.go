package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/shift"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func testClock(t *testing.T) *clock.Clock {
	t.Helper()
	clk, err := clock.NewWithNow(func() time.Time { return testNow })
	require.NoError(t, err)
	return clk
}

func TestBuildEmptyDay(t *testing.T) {
	clk := testClock(t)
	b := NewBuilder(clk)

	_, err := b.Build(clk.Date(2025, time.March, 10), nil)
	assert.ErrorIs(t, err, ErrNoShifts)
}

func TestBuildRows(t *testing.T) {
	clk := testClock(t)
	b := NewBuilder(clk)

	date := clk.Date(2025, time.March, 10)
	in1, err := clk.At(date, "9:00 AM")
	require.NoError(t, err)
	out1, err := clk.At(date, "5:30 PM")
	require.NoError(t, err)
	in2, err := clk.At(date, "10:15 AM")
	require.NoError(t, err)

	rows := []shift.UserShiftRow{
		{
			Name:           "Pat Doe",
			PhoneNumber:    "555-0100",
			Email:          "pat@example.com",
			MailingAddress: "1 Main St",
			ClockIn:        in1,
			ClockOut:       &out1,
			TimeWorked:     "8h 30m",
		},
		{
			Name:    "Lee Gray",
			ClockIn: in2, // still clocked in
		},
	}

	file, err := b.Build(date, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file))
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows("Timesheet")
	require.NoError(t, err)
	require.Len(t, sheetRows, 3) // header + one row per shift

	assert.Equal(t, []string{
		"Full Name", "Phone Number", "Email", "Mailing Address",
		"Clocked In", "Clocked Out", "Time Worked",
	}, sheetRows[0])

	assert.Equal(t, []string{
		"Pat Doe", "555-0100", "pat@example.com", "1 Main St",
		"9:00 AM", "5:30 PM", "8h 30m",
	}, sheetRows[1])

	// Open shift: empty clock-out and time-worked cells.
	assert.Equal(t, "Lee Gray", sheetRows[2][0])
	assert.Equal(t, "10:15 AM", sheetRows[2][4])
}

func TestFileName(t *testing.T) {
	clk := testClock(t)
	b := NewBuilder(clk)

	assert.Equal(t, "Mar1st2025-timesheet.xlsx", b.FileName(clk.Date(2025, time.March, 1)))
	assert.Equal(t, "Dec22nd2024-timesheet.xlsx", b.FileName(clk.Date(2024, time.December, 22)))
}
