package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/note"
	"timeclock.app/timeclock/report"
	"timeclock.app/timeclock/shift"
	"timeclock.app/timeclock/user"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Shift{}, &model.Note{}, &model.HiddenUser{}))

	clk, err := clock.NewWithNow(func() time.Time { return testNow })
	require.NoError(t, err)

	shifts := shift.NewService(db, clk)
	notes := note.NewService(db, clk)
	reports := report.NewService(shifts, notes, report.NewBuilder(clk),
		nil, nil, clk, "timeclock@example.com", nil)

	endpoint := &Endpoint{
		Clk:     clk,
		Shifts:  shifts,
		Users:   user.NewService(db, clk),
		Notes:   notes,
		Reports: reports,
	}

	r := gin.New()
	api := r.Group("/api")
	endpoint.RegisterPublic(api)
	// Admin routes mounted without the auth middleware for testing.
	endpoint.RegisterAdmin(api)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	u := &model.User{UserID: "u1", Name: "Pat Doe", PhoneNumber: "555-0100"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestClockInAndOut(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/clockin", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data ShiftDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "9:30 AM", created.Data.ClockIn)
	assert.Empty(t, created.Data.ClockOut)

	w = doJSON(t, r, http.MethodPost, "/api/clockout", gin.H{
		"shiftId":  created.Data.ShiftID,
		"clockIn":  created.Data.ClockIn,
		"clockOut": "5:00 PM",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "7h 30m")
}

func TestClockInUnknownUser(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/clockin", gin.H{"userId": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateShiftRejectsOutOfOrder(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/clockin", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data ShiftDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, "/api/shift", gin.H{
		"shiftId":  created.Data.ShiftID,
		"clockIn":  "5:00 PM",
		"clockOut": "9:00 AM",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "clock out before clock in")
}

func TestRemoveShiftIdempotent(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/clockin", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data ShiftDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/shift/%d", created.Data.ShiftID)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, path, nil).Code)
}

func TestSpreadsheetEmptyDayIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/spreadsheet?date=2025-03-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpreadsheetDownload(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/clockin", gin.H{"userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/spreadsheet?date=2025-03-10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Mar10th2025-timesheet.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestPurgeShifts(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db)

	// March 10 begins at 05:00 UTC in America/Chicago. One shift late the
	// previous evening, one on the cutoff day itself: the count and the
	// purge must agree on the business-day boundary.
	dayStart := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Shift{UserID: "u1", Name: "Pat Doe", ClockIn: dayStart.Add(-2 * time.Hour)}).Error)
	require.NoError(t, db.Create(&model.Shift{UserID: "u1", Name: "Pat Doe", ClockIn: dayStart.Add(9 * time.Hour)}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/shifts/count?before=2025-03-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = doJSON(t, r, http.MethodPost, "/api/shifts/purge", gin.H{"before": "2025-03-10"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":1`)

	// Exactly what the count promised was removed: the cutoff-day shift
	// survives.
	var remaining []model.Shift
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].ClockIn.Equal(dayStart.Add(9*time.Hour)))
}
