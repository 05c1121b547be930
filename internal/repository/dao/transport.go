package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrTransportNotFound = errors.New("transport not found")

type Transport struct {
	ID uint `gorm:"primaryKey"`

	PracticeID uint `gorm:"not null;uniqueIndex:idx_transports_practice_board_direction"`
	BoardID    uint `gorm:"not null;uniqueIndex:idx_transports_practice_board_direction"`
	// "to" or "from".
	Direction string `gorm:"not null;uniqueIndex:idx_transports_practice_board_direction"`

	UserID uint  `gorm:"not null"`
	User   User  `gorm:"foreignKey:UserID"`
	Board  Board `gorm:"foreignKey:BoardID"`
}

type TransportDAO struct {
	db *gorm.DB
}

func NewTransportDAO(db *gorm.DB) *TransportDAO {
	return &TransportDAO{
		db: db,
	}
}

const (
	AssignCreated = "created"
	AssignRebound = "rebound"
	AssignKept    = "kept"
)

// Assign upserts the single record for (practice, board, direction). A rebind
// to a different carrier decrements the old carrier's counter and increments
// the new one in the same transaction; a fresh record only increments.
func (d *TransportDAO) Assign(ctx context.Context, practiceID, boardID, userID uint, direction string) (Transport, string, error) {
	var transport Transport
	outcome := AssignCreated

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&transport,
			"practice_id = ? AND board_id = ? AND direction = ?",
			practiceID, boardID, direction).Error
		switch {
		case err == nil:
			if transport.UserID == userID {
				outcome = AssignKept
				return nil
			}

			if err := decrementTransportCount(tx, transport.UserID); err != nil {
				return err
			}
			if err := tx.Model(&Transport{ID: transport.ID}).
				Update("user_id", userID).Error; err != nil {
				return err
			}
			if err := incrementTransportCount(tx, userID); err != nil {
				return err
			}

			transport.UserID = userID
			outcome = AssignRebound
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			transport = Transport{
				PracticeID: practiceID,
				BoardID:    boardID,
				UserID:     userID,
				Direction:  direction,
			}
			if err := tx.Create(&transport).Error; err != nil {
				return err
			}

			return incrementTransportCount(tx, userID)

		default:
			return err
		}
	})
	if err != nil {
		return Transport{}, "", err
	}

	return transport, outcome, nil
}

// InsertIfAbsent creates the record only when the (practice, board, direction)
// slot is free, incrementing the carrier's counter exactly when a row is
// actually created. The lottery uses this so a concurrent confirmation cannot
// corrupt counters.
func (d *TransportDAO) InsertIfAbsent(ctx context.Context, practiceID, boardID, userID uint, direction string) (Transport, bool, error) {
	var transport Transport
	created := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&transport,
			"practice_id = ? AND board_id = ? AND direction = ?",
			practiceID, boardID, direction).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		transport = Transport{
			PracticeID: practiceID,
			BoardID:    boardID,
			UserID:     userID,
			Direction:  direction,
		}
		if err := tx.Create(&transport).Error; err != nil {
			return err
		}

		created = true
		return incrementTransportCount(tx, userID)
	})
	if err != nil {
		return Transport{}, false, err
	}

	return transport, created, nil
}

func (d *TransportDAO) Delete(ctx context.Context, id uint) (Transport, error) {
	var transport Transport

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&transport, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransportNotFound
			}

			return err
		}

		if err := decrementTransportCount(tx, transport.UserID); err != nil {
			return err
		}

		return tx.Delete(&Transport{}, id).Error
	})
	if err != nil {
		return Transport{}, err
	}

	return transport, nil
}

func (d *TransportDAO) FindByID(ctx context.Context, id uint) (Transport, error) {
	var transport Transport

	result := d.db.WithContext(ctx).Preload("User").Preload("Board").First(&transport, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Transport{}, ErrTransportNotFound
		}

		return Transport{}, result.Error
	}

	return transport, nil
}

func (d *TransportDAO) FindByPracticeAndDirection(ctx context.Context, practiceID uint, direction string) ([]Transport, error) {
	var transports []Transport

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Board").
		Where("practice_id = ? AND direction = ?", practiceID, direction).
		Order("id").
		Find(&transports)
	if result.Error != nil {
		return nil, result.Error
	}

	return transports, nil
}

func incrementTransportCount(tx *gorm.DB, userID uint) error {
	return tx.Model(&User{ID: userID}).
		Update("transport_count", gorm.Expr("transport_count + 1")).Error
}

// decrementTransportCount clamps at zero; the counter is never persisted
// negative.
func decrementTransportCount(tx *gorm.DB, userID uint) error {
	return tx.Model(&User{ID: userID}).
		Update("transport_count",
			gorm.Expr("CASE WHEN transport_count > 0 THEN transport_count - 1 ELSE 0 END")).Error
}
