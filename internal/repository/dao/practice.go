package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPracticeNotFound   = errors.New("practice not found")
	ErrAttendanceNotFound = errors.New("attendance not found")
)

type Practice struct {
	ID uint `gorm:"primaryKey"`

	Title    string    `gorm:"not null"`
	Date     time.Time `gorm:"not null"`
	Location string    `gorm:"not null"`
	TeamID   uint      `gorm:"not null;index"`

	Sessions    []Session    `gorm:"foreignKey:PracticeID;constraint:OnDelete:CASCADE"`
	Attendances []Attendance `gorm:"foreignKey:PracticeID;constraint:OnDelete:CASCADE"`
	Transports  []Transport  `gorm:"foreignKey:PracticeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Attendance struct {
	ID uint `gorm:"primaryKey"`

	PracticeID uint `gorm:"not null;uniqueIndex:idx_attendances_practice_user"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_attendances_practice_user"`
	User       User `gorm:"foreignKey:UserID"`

	Status string `gorm:"not null;default:unanswered"`
	Reason string
	Notes  string
}

type PracticeDAO struct {
	db *gorm.DB
}

func NewPracticeDAO(db *gorm.DB) *PracticeDAO {
	return &PracticeDAO{
		db: db,
	}
}

// InsertWithAttendances creates the practice and fans out one unanswered
// attendance row per target user in the same transaction.
func (d *PracticeDAO) InsertWithAttendances(ctx context.Context, practice Practice, userIDs []uint) (Practice, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&practice).Error; err != nil {
			return err
		}

		for _, userID := range userIDs {
			attendance := Attendance{
				PracticeID: practice.ID,
				UserID:     userID,
				Status:     "unanswered",
			}
			if err := tx.Create(&attendance).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Practice{}, err
	}

	return practice, nil
}

func (d *PracticeDAO) FindByID(ctx context.Context, id uint) (Practice, error) {
	var practice Practice

	result := d.db.WithContext(ctx).First(&practice, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Practice{}, ErrPracticeNotFound
		}

		return Practice{}, result.Error
	}

	return practice, nil
}

func (d *PracticeDAO) FindAll(ctx context.Context) ([]Practice, error) {
	var practices []Practice

	result := d.db.WithContext(ctx).Order("date DESC").Find(&practices)
	if result.Error != nil {
		return nil, result.Error
	}

	return practices, nil
}

// Delete cascades sessions (with memberships), attendances and transports.
// Transport counters are deliberately left untouched here; see the transport
// DAO for the per-record unassign path that does decrement.
func (d *PracticeDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessionIDs []uint
		if err := tx.Model(&Session{}).Where("practice_id = ?", id).
			Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Exec("DELETE FROM session_members WHERE session_id IN ?", sessionIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("practice_id = ?", id).Delete(&Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("practice_id = ?", id).Delete(&Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("practice_id = ?", id).Delete(&Transport{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Practice{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPracticeNotFound
		}

		return nil
	})
}

// FindAttendances returns every attendance for the practice, ordered for
// display by the user's generation and then username.
func (d *PracticeDAO) FindAttendances(ctx context.Context, practiceID uint) ([]Attendance, error) {
	var attendances []Attendance

	result := d.db.WithContext(ctx).
		Joins("JOIN users ON users.id = attendances.user_id").
		Where("attendances.practice_id = ?", practiceID).
		Order("users.generation, users.username").
		Preload("User").
		Find(&attendances)
	if result.Error != nil {
		return nil, result.Error
	}

	return attendances, nil
}

func (d *PracticeDAO) FindAttendanceByID(ctx context.Context, id uint) (Attendance, error) {
	var attendance Attendance

	result := d.db.WithContext(ctx).Preload("User").First(&attendance, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attendance{}, ErrAttendanceNotFound
		}

		return Attendance{}, result.Error
	}

	return attendance, nil
}

func (d *PracticeDAO) FindAttendance(ctx context.Context, practiceID, userID uint) (Attendance, error) {
	var attendance Attendance

	result := d.db.WithContext(ctx).
		Preload("User").
		First(&attendance, "practice_id = ? AND user_id = ?", practiceID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attendance{}, ErrAttendanceNotFound
		}

		return Attendance{}, result.Error
	}

	return attendance, nil
}

func (d *PracticeDAO) UpdateAttendance(ctx context.Context, id uint, status, reason, notes string) (Attendance, error) {
	result := d.db.WithContext(ctx).
		Model(&Attendance{ID: id}).
		Updates(map[string]any{"status": status, "reason": reason, "notes": notes})
	if result.Error != nil {
		return Attendance{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Attendance{}, ErrAttendanceNotFound
	}

	return d.FindAttendanceByID(ctx, id)
}

func (d *PracticeDAO) InsertAttendance(ctx context.Context, attendance Attendance) (Attendance, error) {
	result := d.db.WithContext(ctx).Create(&attendance)
	if result.Error != nil {
		return Attendance{}, result.Error
	}

	return d.FindAttendanceByID(ctx, attendance.ID)
}

// FindUnansweredByUser feeds the pending-action dashboard, soonest practice
// first.
func (d *PracticeDAO) FindUnansweredByUser(ctx context.Context, userID uint) ([]Attendance, error) {
	var attendances []Attendance

	result := d.db.WithContext(ctx).
		Joins("JOIN practices ON practices.id = attendances.practice_id").
		Where("attendances.user_id = ? AND attendances.status = ?", userID, "unanswered").
		Order("practices.date").
		Preload("User").
		Find(&attendances)
	if result.Error != nil {
		return nil, result.Error
	}

	return attendances, nil
}
