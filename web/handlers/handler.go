package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/note"
	"timeclock.app/timeclock/report"
	"timeclock.app/timeclock/shift"
	"timeclock.app/timeclock/user"
	"timeclock.app/timeclock/web/common"
)

// Endpoint bundles the services behind the HTTP surface.
type Endpoint struct {
	Clk     *clock.Clock
	Shifts  *shift.Service
	Users   *user.Service
	Notes   *note.Service
	Reports *report.Service

	AdminPasswordHash string
	SigningSecret     string // base64
}

// statusFor maps domain errors onto HTTP statuses: malformed input and
// rejected ranges are the caller's fault, missing data is 404, the rest
// is a server-side failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, clock.ErrClockFormat),
		errors.Is(err, clock.ErrClockOutBeforeClockIn):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrNoShifts),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ShiftDTO carries a shift with its instants rendered as business-timezone
// clock text, the shape the clients edit and send back.
type ShiftDTO struct {
	ShiftID    int    `json:"shiftId"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	ClockIn    string `json:"clockIn"`
	ClockOut   string `json:"clockOut"`
	TimeWorked string `json:"timeWorked"`
}

func (e *Endpoint) shiftDTO(s *model.Shift) ShiftDTO {
	dto := ShiftDTO{
		ShiftID:    s.ShiftID,
		UserID:     s.UserID,
		Name:       s.Name,
		ClockIn:    e.Clk.Display(s.ClockIn),
		TimeWorked: s.TimeWorked,
	}
	if s.ClockOut != nil {
		dto.ClockOut = e.Clk.Display(*s.ClockOut)
	}
	return dto
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid "+name))
		return 0, false
	}
	return v, true
}
