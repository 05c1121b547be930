package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBoardNotFound    = errors.New("board not found")
	ErrBoardNameExists  = errors.New("board name already taken")
	ErrSerialNumberUsed = errors.New("serial number already taken")
)

type Board struct {
	ID uint `gorm:"primaryKey"`

	Name         string  `gorm:"unique;not null"`
	SerialNumber *string `gorm:"unique"`
	Location     string  `gorm:"not null"`
	UpdatedBy    string  `gorm:"not null"`
	Notes        string

	Histories []UpdateHistory `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UpdateHistory struct {
	ID uint `gorm:"primaryKey"`

	BoardID          uint `gorm:"not null;index"`
	PreviousLocation string
	NewLocation      string `gorm:"not null"`
	UpdatedBy        string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type BoardDAO struct {
	db *gorm.DB
}

func NewBoardDAO(db *gorm.DB) *BoardDAO {
	return &BoardDAO{
		db: db,
	}
}

func (d *BoardDAO) Insert(ctx context.Context, board Board) (Board, error) {
	result := d.db.WithContext(ctx).Create(&board)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_boards_name") {
			return Board{}, ErrBoardNameExists
		}
		if isUniqueViolation(result.Error, "uni_boards_serial_number") {
			return Board{}, ErrSerialNumberUsed
		}

		return Board{}, result.Error
	}

	return board, nil
}

func (d *BoardDAO) FindByID(ctx context.Context, id uint) (Board, error) {
	var board Board

	result := d.db.WithContext(ctx).First(&board, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Board{}, ErrBoardNotFound
		}

		return Board{}, result.Error
	}

	return board, nil
}

func (d *BoardDAO) FindAll(ctx context.Context) ([]Board, error) {
	var boards []Board

	result := d.db.WithContext(ctx).Order("id").Find(&boards)
	if result.Error != nil {
		return nil, result.Error
	}

	return boards, nil
}

func (d *BoardDAO) CountByLocation(ctx context.Context, location string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Board{}).Where("location = ?", location).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// FindAtPractice lists boards already at the location plus boards scheduled
// to arrive there via an outbound transport.
func (d *BoardDAO) FindAtPractice(ctx context.Context, location string, inboundBoardIDs []uint) ([]Board, error) {
	var boards []Board

	query := d.db.WithContext(ctx).Order("name")
	if len(inboundBoardIDs) > 0 {
		query = query.Where("location = ? OR id IN ?", location, inboundBoardIDs)
	} else {
		query = query.Where("location = ?", location)
	}

	result := query.Find(&boards)
	if result.Error != nil {
		return nil, result.Error
	}

	return boards, nil
}

// Update writes the board and appends a history row when the location or the
// recorded holder changed.
func (d *BoardDAO) Update(ctx context.Context, board Board) (Board, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Board
		if err := tx.First(&current, board.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}

			return err
		}

		if current.Location != board.Location || current.UpdatedBy != board.UpdatedBy {
			history := UpdateHistory{
				BoardID:          board.ID,
				PreviousLocation: current.Location,
				NewLocation:      board.Location,
				UpdatedBy:        board.UpdatedBy,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&Board{ID: board.ID}).
			Select("Name", "SerialNumber", "Location", "UpdatedBy", "Notes").
			Updates(board)
		if result.Error != nil {
			if isUniqueViolation(result.Error, "uni_boards_name") {
				return ErrBoardNameExists
			}
			if isUniqueViolation(result.Error, "uni_boards_serial_number") {
				return ErrSerialNumberUsed
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Board{}, err
	}

	return d.FindByID(ctx, board.ID)
}

// BulkRelocate moves several boards to one location, recording history per
// board that actually changed. Returns the number of boards updated.
func (d *BoardDAO) BulkRelocate(ctx context.Context, boardIDs []uint, location, updatedBy string) (int, error) {
	updated := 0

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range boardIDs {
			var board Board
			if err := tx.First(&board, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}

				return err
			}

			if board.Location != location || board.UpdatedBy != updatedBy {
				history := UpdateHistory{
					BoardID:          board.ID,
					PreviousLocation: board.Location,
					NewLocation:      location,
					UpdatedBy:        updatedBy,
				}
				if err := tx.Create(&history).Error; err != nil {
					return err
				}
			}

			result := tx.Model(&Board{ID: board.ID}).
				Updates(map[string]any{"location": location, "updated_by": updatedBy})
			if result.Error != nil {
				return result.Error
			}

			updated++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

func (d *BoardDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&UpdateHistory{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Board{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}

		return nil
	})
}

func (d *BoardDAO) FindHistories(ctx context.Context, boardID uint) ([]UpdateHistory, error) {
	var histories []UpdateHistory

	result := d.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("id DESC").
		Find(&histories)
	if result.Error != nil {
		return nil, result.Error
	}

	return histories, nil
}
