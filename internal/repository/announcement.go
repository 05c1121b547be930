package repository

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
)

var ErrAnnouncementNotFound = dao.ErrAnnouncementNotFound

type AnnouncementDAO interface {
	Insert(ctx context.Context, announcement dao.Announcement) (dao.Announcement, error)
	FindAll(ctx context.Context) ([]dao.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type AnnouncementRepository struct {
	dao AnnouncementDAO
}

func NewAnnouncementRepository(dao AnnouncementDAO) *AnnouncementRepository {
	return &AnnouncementRepository{
		dao: dao,
	}
}

func announcementDAOToDomain(a dao.Announcement) domain.Announcement {
	return domain.Announcement{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		AuthorID:  a.AuthorID,
		Author:    a.Author.Username,
		CreatedAt: a.CreatedAt,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error) {
	created, err := r.dao.Insert(ctx, dao.Announcement{
		Title:    announcement.Title,
		Content:  announcement.Content,
		AuthorID: announcement.AuthorID,
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return announcementDAOToDomain(created), nil
}

func (r *AnnouncementRepository) FindAll(ctx context.Context) ([]domain.Announcement, error) {
	announcements, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Announcement, len(announcements))
	for i, a := range announcements {
		result[i] = announcementDAOToDomain(a)
	}

	return result, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
