package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/model"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Shift{}, &model.HiddenUser{}))

	clk, err := clock.NewWithNow(func() time.Time { return testNow })
	require.NoError(t, err)

	return NewService(db, clk), db
}

func TestCreateAlsoClocksIn(t *testing.T) {
	svc, db := newTestService(t)

	u := &model.User{Name: "Pat Doe", PhoneNumber: "555-0100"}
	require.NoError(t, svc.Create(u))
	require.NotEmpty(t, u.UserID)

	var shifts []model.Shift
	require.NoError(t, db.Where("userId = ?", u.UserID).Find(&shifts).Error)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Pat Doe", shifts[0].Name)
	assert.True(t, shifts[0].Open())
	assert.True(t, shifts[0].ClockIn.Equal(testNow))
}

func TestRemoveDeletesUserWithoutHistory(t *testing.T) {
	svc, db := newTestService(t)

	u := &model.User{UserID: "u1", Name: "Pat Doe"}
	require.NoError(t, db.Create(u).Error)

	require.NoError(t, svc.Remove("u1", "admin", "duplicate entry"))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&model.HiddenUser{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRemoveHidesUserWithHistory(t *testing.T) {
	svc, db := newTestService(t)

	u := &model.User{UserID: "u1", Name: "Pat Doe"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&model.Shift{UserID: "u1", Name: "Pat Doe", ClockIn: testNow}).Error)

	require.NoError(t, svc.Remove("u1", "admin", "left the company"))

	// The user row survives so past reports still resolve contact fields.
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var hidden model.HiddenUser
	require.NoError(t, db.First(&hidden, "userId = ?", "u1").Error)
	assert.Equal(t, "admin", hidden.HiddenBy)
	assert.Equal(t, "left the company", hidden.Reason)
}

func TestVisibleExcludesHidden(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, db.Create(&model.User{UserID: "u1", Name: "Pat Doe"}).Error)
	require.NoError(t, db.Create(&model.User{UserID: "u2", Name: "Lee Gray"}).Error)
	require.NoError(t, db.Create(&model.Shift{UserID: "u1", Name: "Pat Doe", ClockIn: testNow}).Error)

	require.NoError(t, svc.Remove("u1", "admin", ""))

	users, err := svc.Visible()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].UserID)

	ids, err := svc.HiddenIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)
}

func TestRestore(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, db.Create(&model.User{UserID: "u1", Name: "Pat Doe"}).Error)
	require.NoError(t, db.Create(&model.Shift{UserID: "u1", Name: "Pat Doe", ClockIn: testNow}).Error)
	require.NoError(t, svc.Remove("u1", "admin", ""))

	require.NoError(t, svc.Restore("u1"))

	users, err := svc.Visible()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].UserID)
}
