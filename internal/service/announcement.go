package service

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var ErrAnnouncementNotFound = repository.ErrAnnouncementNotFound

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error)
	FindAll(ctx context.Context) ([]domain.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type AnnouncementService struct {
	repo AnnouncementRepository
}

func NewAnnouncementService(repo AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{
		repo: repo,
	}
}

func (s *AnnouncementService) Create(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error) {
	if announcement.Title == "" || announcement.Content == "" {
		return domain.Announcement{}, ErrValidation
	}

	created, err := s.repo.Create(ctx, announcement)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List returns announcements newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	announcements, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return announcements, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
