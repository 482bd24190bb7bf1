// Package user manages workers: creation, listing, and the
// hide-instead-of-delete rule for workers with shift history.
package user

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/model"
)

type Service struct {
	db  *gorm.DB
	clk *clock.Clock
}

func NewService(db *gorm.DB, clk *clock.Clock) *Service {
	return &Service{db: db, clk: clk}
}

// Create inserts a new user and opens their first shift in one
// transaction: registering at the kiosk is also clocking in.
func (s *Service) Create(u *model.User) error {
	u.UserID = uuid.NewString()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&model.Shift{
			UserID:  u.UserID,
			Name:    u.Name,
			ClockIn: s.clk.Now(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("create user %s: %w", u.Name, err)
	}
	logrus.Infof("created user %s (%s)", u.Name, u.UserID)
	return nil
}

// Find fetches one user by id.
func (s *Service) Find(userID string) (*model.User, error) {
	var u model.User
	if err := s.db.First(&u, "userId = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return &u, nil
}

// Visible returns every user without a hidden marker, ordered by name.
func (s *Service) Visible() ([]model.User, error) {
	var users []model.User
	err := s.db.
		Where("userId NOT IN (?)", s.db.Model(&model.HiddenUser{}).Select("userId")).
		Order("name").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Remove deletes a user without shift history outright. A user with
// history is hidden instead, so old reports keep resolving their contact
// fields. The existence check and the mutation share one transaction so a
// concurrent clock-in cannot slip between them.
func (s *Service) Remove(userID, removedBy, reason string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var shiftCount int64
		if err := tx.Model(&model.Shift{}).Where("userId = ?", userID).Count(&shiftCount).Error; err != nil {
			return err
		}

		if shiftCount == 0 {
			logrus.Infof("deleting user %s (no shift history)", userID)
			return tx.Delete(&model.User{}, "userId = ?", userID).Error
		}

		logrus.Infof("hiding user %s (%d shifts on record)", userID, shiftCount)
		return tx.Create(&model.HiddenUser{
			UserID:     userID,
			DateHidden: s.clk.Now(),
			HiddenBy:   removedBy,
			Reason:     reason,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("remove user %s: %w", userID, err)
	}
	return nil
}

// Restore clears a user's hidden marker.
func (s *Service) Restore(userID string) error {
	if err := s.db.Delete(&model.HiddenUser{}, "userId = ?", userID).Error; err != nil {
		return fmt.Errorf("restore user %s: %w", userID, err)
	}
	return nil
}

// HiddenIDs lists the ids of all hidden users.
func (s *Service) HiddenIDs() ([]string, error) {
	var ids []string
	err := s.db.Model(&model.HiddenUser{}).Pluck("userId", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list hidden users: %w", err)
	}
	return ids, nil
}
