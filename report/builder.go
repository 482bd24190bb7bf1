// Package report aggregates a day's shifts into an xlsx timesheet and
// dispatches it by email.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/shift"
)

// ErrNoShifts is returned when a report is requested for a date with no
// recorded shifts. Callers map it to "not found" rather than sending a
// blank file.
var ErrNoShifts = errors.New("no shifts recorded for date")

const sheetName = "Timesheet"

var header = []interface{}{
	"Full Name",
	"Phone Number",
	"Email",
	"Mailing Address",
	"Clocked In",
	"Clocked Out",
	"Time Worked",
}

type Builder struct {
	clk *clock.Clock
}

func NewBuilder(clk *clock.Clock) *Builder {
	return &Builder{clk: clk}
}

// FileName returns the attachment name for a date, e.g.
// "Jan5th2025-timesheet.xlsx".
func (b *Builder) FileName(date time.Time) string {
	return clock.FileNameDate(date) + "-timesheet.xlsx"
}

// Build renders one header row plus one row per shift, in the order the
// rows were fetched (clock-in order). An open shift shows an empty
// clocked-out cell.
func (b *Builder) Build(date time.Time, rows []shift.UserShiftRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoShifts, date.Format("2006-01-02"))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("build worksheet: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "G", 22); err != nil {
		return nil, fmt.Errorf("build worksheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("build worksheet: %w", err)
	}

	for i, row := range rows {
		clockedOut := ""
		if row.ClockOut != nil {
			clockedOut = b.clk.Display(*row.ClockOut)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("build worksheet: %w", err)
		}
		err = f.SetSheetRow(sheetName, cell, &[]interface{}{
			row.Name,
			row.PhoneNumber,
			row.Email,
			row.MailingAddress,
			b.clk.Display(row.ClockIn),
			clockedOut,
			row.TimeWorked,
		})
		if err != nil {
			return nil, fmt.Errorf("build worksheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write worksheet: %w", err)
	}
	return buf.Bytes(), nil
}
