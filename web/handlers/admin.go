package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock.app/timeclock/security"
	"timeclock.app/timeclock/web/common"
	"timeclock.app/timeclock/web/middlewares"
)

const adminTokenTTL = 12 * time.Hour

// RegisterAdmin mounts the token-gated administrative routes.
func (e *Endpoint) RegisterAdmin(r *gin.RouterGroup) {
	r.PUT("/shift", e.UpdateShift)
	r.DELETE("/shift/:id", e.RemoveShift)
	r.GET("/shifts/count", e.CountShifts)
	r.POST("/shifts/purge", e.PurgeShifts)
	r.GET("/spreadsheet", e.DownloadSpreadsheet)
	r.POST("/email/send", e.SendDailyEmail)
	r.DELETE("/user/:id", e.RemoveUser)
	r.POST("/user/:id/restore", e.RestoreUser)
	r.GET("/users/hidden", e.HiddenUsers)
}

type LoginDTO struct {
	Password string `json:"password" binding:"required"`
}

func (e *Endpoint) AdminLogin(c *gin.Context) {
	var body LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if !security.VerifyPassword(body.Password, e.AdminPasswordHash) {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid password"))
		return
	}

	token, err := security.CreateAdminToken(e.SigningSecret, adminTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.SetCookie(middlewares.AdminCookieName, token, int(adminTokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"token": token}))
}

type ShiftUpdateDTO struct {
	ShiftID  int    `json:"shiftId" binding:"required"`
	ClockIn  string `json:"clockIn" binding:"required"`
	ClockOut string `json:"clockOut"`
}

// UpdateShift rewrites a shift's timestamps. An empty clockOut reopens the
// shift; an out-of-order pair is rejected with 400.
func (e *Endpoint) UpdateShift(c *gin.Context) {
	var body ShiftUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	timeWorked, err := e.Shifts.Update(body.ShiftID, body.ClockIn, body.ClockOut)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"timeWorked": timeWorked}))
}

func (e *Endpoint) RemoveShift(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := e.Shifts.Remove(id); err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

// CountShifts reports how many shifts a purge would remove, so the client
// can confirm before committing.
func (e *Endpoint) CountShifts(c *gin.Context) {
	date, ok := e.dateQuery(c, "before")
	if !ok {
		return
	}

	count, err := e.Shifts.CountBefore(date)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"count": count}))
}

type PurgeDTO struct {
	Before common.DateOnly `json:"before" binding:"required"`
}

func (e *Endpoint) PurgeShifts(c *gin.Context) {
	var body PurgeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if body.Before.IsZero() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Field 'before' is required"))
		return
	}

	deleted, err := e.Shifts.PurgeBefore(e.businessDate(body.Before))
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"deleted": deleted}))
}

func (e *Endpoint) DownloadSpreadsheet(c *gin.Context) {
	date, ok := e.dateQuery(c, "date")
	if !ok {
		return
	}

	filename, file, err := e.Reports.Spreadsheet(date)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file)
}

type SendEmailDTO struct {
	Date common.DateOnly `json:"date"`
}

func (e *Endpoint) SendDailyEmail(c *gin.Context) {
	var body SendEmailDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	date := e.Clk.Today()
	if !body.Date.IsZero() {
		date = e.businessDate(body.Date)
	}

	if err := e.Reports.SendDaily(c.Request.Context(), date); err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (e *Endpoint) RemoveUser(c *gin.Context) {
	userID := c.Param("id")

	if err := e.Users.Remove(userID, "admin", c.Query("reason")); err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (e *Endpoint) RestoreUser(c *gin.Context) {
	if err := e.Users.Restore(c.Param("id")); err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (e *Endpoint) HiddenUsers(c *gin.Context) {
	ids, err := e.Users.HiddenIDs()
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(ids))
}

// businessDate reinterprets a JSON date, parsed without a zone, as a
// business-timezone date. Without this a body date and the equivalent
// query-string date would name different business days.
func (e *Endpoint) businessDate(d common.DateOnly) time.Time {
	return e.Clk.Date(d.Year(), d.Month(), d.Day())
}

func (e *Endpoint) dateQuery(c *gin.Context, name string) (time.Time, bool) {
	date, err := e.Clk.ParseDate(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid "+name+" date, want yyyy-MM-dd"))
		return time.Time{}, false
	}
	return date, true
}
