package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type Announcement struct {
	ID uint `gorm:"primaryKey"`

	Title    string `gorm:"not null"`
	Content  string `gorm:"not null"`
	AuthorID uint   `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	CreatedAt time.Time `gorm:"not null"`
}

type AnnouncementDAO struct {
	db *gorm.DB
}

func NewAnnouncementDAO(db *gorm.DB) *AnnouncementDAO {
	return &AnnouncementDAO{
		db: db,
	}
}

func (d *AnnouncementDAO) Insert(ctx context.Context, announcement Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Create(&announcement)
	if result.Error != nil {
		return Announcement{}, result.Error
	}

	return announcement, nil
}

func (d *AnnouncementDAO) FindAll(ctx context.Context) ([]Announcement, error) {
	var announcements []Announcement

	result := d.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&announcements)
	if result.Error != nil {
		return nil, result.Error
	}

	return announcements, nil
}

func (d *AnnouncementDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}
