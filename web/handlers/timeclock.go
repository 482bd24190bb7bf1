package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/web/common"
)

// RegisterPublic mounts the kiosk-facing routes.
func (e *Endpoint) RegisterPublic(r *gin.RouterGroup) {
	r.GET("/users", e.ListUsers)
	r.POST("/user", e.CreateUser)
	r.POST("/clockin", e.ClockIn)
	r.POST("/clockout", e.ClockOut)
	r.GET("/shifts", e.TodayShifts)
	r.POST("/note", e.RecordNote)
	r.GET("/notes", e.ListNotes)
	r.POST("/admin/login", e.AdminLogin)
}

func (e *Endpoint) ListUsers(c *gin.Context) {
	users, err := e.Users.Visible()
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(users))
}

func (e *Endpoint) CreateUser(c *gin.Context) {
	var u model.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := e.Users.Create(&u); err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(u))
}

type ClockInDTO struct {
	UserID string `json:"userId" binding:"required"`
}

func (e *Endpoint) ClockIn(c *gin.Context) {
	var body ClockInDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	u, err := e.Users.Find(body.UserID)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	s, err := e.Shifts.Start(u)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(e.shiftDTO(s)))
}

type ClockOutDTO struct {
	ShiftID  int    `json:"shiftId" binding:"required"`
	ClockIn  string `json:"clockIn" binding:"required"`
	ClockOut string `json:"clockOut" binding:"required"`
}

// ClockOut closes a shift with the end time the worker states, which is
// allowed to differ from the moment the request arrives.
func (e *Endpoint) ClockOut(c *gin.Context) {
	var body ClockOutDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	timeWorked, err := e.Shifts.ClockOut(body.ShiftID, body.ClockIn, body.ClockOut)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"timeWorked": timeWorked}))
}

func (e *Endpoint) TodayShifts(c *gin.Context) {
	shifts, err := e.Shifts.ShiftsByDate(e.Clk.Today())
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i := range shifts {
		dtos[i] = e.shiftDTO(&shifts[i])
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

type NoteDTO struct {
	Note string `json:"note" binding:"required"`
}

func (e *Endpoint) RecordNote(c *gin.Context) {
	var body NoteDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := e.Notes.Record(body.Note); err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (e *Endpoint) ListNotes(c *gin.Context) {
	notes, err := e.Notes.All()
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(notes))
}
