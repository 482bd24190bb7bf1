package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockOutBeforeClockIn is returned by TimeWorkedBetween when the
// clock-out instant is not strictly after the clock-in instant.
var ErrClockOutBeforeClockIn = errors.New("clock out before clock in")

// TimeWorked computes the elapsed time between two clock texts, e.g.
// ("9:00 AM", "5:30 PM") -> "8h 30m". A negative difference is assumed to
// be an overnight shift and rolls forward 24 hours, so ("11:00 PM",
// "1:00 AM") -> "2h 00m". Identical times yield "0h 00m".
func TimeWorked(clockIn, clockOut string) (string, error) {
	start, err := ParseClock(clockIn)
	if err != nil {
		return "", err
	}
	end, err := ParseClock(clockOut)
	if err != nil {
		return "", err
	}

	diff := end.Sub(start)
	if diff < 0 {
		// Clocked out past midnight. A shift never spans more than one day.
		diff += 24 * time.Hour
	}
	return FormatWorked(diff), nil
}

// TimeWorkedBetween computes the elapsed time between two resolved
// instants, used after administrative edits where the date component is
// already known. Unlike TimeWorked there is no overnight correction: a
// clock-out at or before clock-in is rejected. A nil clock-out means the
// shift is still open and yields an empty string.
func TimeWorkedBetween(clockIn time.Time, clockOut *time.Time) (string, error) {
	if clockOut == nil {
		return "", nil
	}
	if !clockIn.Before(*clockOut) {
		return "", fmt.Errorf("%w: %s >= %s", ErrClockOutBeforeClockIn, clockIn, *clockOut)
	}
	return FormatWorked(clockOut.Sub(clockIn)), nil
}

// FormatWorked renders a duration as whole hours and zero-padded minutes.
func FormatWorked(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
