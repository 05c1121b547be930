package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID uint `gorm:"primaryKey"`

	PracticeID    uint `gorm:"not null;index"`
	SessionNumber int  `gorm:"not null"`

	StartTime *time.Time
	EndTime   *time.Time

	Members []User `gorm:"many2many:session_members"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

// Insert appends a session numbered count+1. Numbers are never reused, so a
// deleted session leaves a gap.
func (d *SessionDAO) Insert(ctx context.Context, practiceID uint) (Session, error) {
	var session Session

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Session{}).Where("practice_id = ?", practiceID).
			Count(&count).Error; err != nil {
			return err
		}

		session = Session{
			PracticeID:    practiceID,
			SessionNumber: int(count) + 1,
		}

		return tx.Create(&session).Error
	})
	if err != nil {
		return Session{}, err
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).Preload("Members").First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByPractice(ctx context.Context, practiceID uint) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).
		Preload("Members").
		Where("practice_id = ?", practiceID).
		Order("session_number").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) AddMember(ctx context.Context, sessionID, userID uint) error {
	session := Session{ID: sessionID}
	user := User{ID: userID}

	return d.db.WithContext(ctx).Model(&session).Association("Members").Append(&user)
}

func (d *SessionDAO) RemoveMember(ctx context.Context, sessionID, userID uint) error {
	session := Session{ID: sessionID}
	user := User{ID: userID}

	return d.db.WithContext(ctx).Model(&session).Association("Members").Delete(&user)
}

// Delete removes the session and its membership rows only; members and their
// attendances are untouched.
func (d *SessionDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM session_members WHERE session_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&Session{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		return nil
	})
}
