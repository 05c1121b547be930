package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var ErrAttendanceNotFound = repository.ErrAttendanceNotFound

type AttendanceRepository interface {
	FindAttendance(ctx context.Context, practiceID, userID uint) (domain.Attendance, error)
	UpdateAttendance(ctx context.Context, id uint, status domain.AttendanceStatus, reason, notes string) (domain.Attendance, error)
	CreateAttendance(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error)
	FindAttendances(ctx context.Context, practiceID uint) ([]domain.Attendance, error)
	FindUnansweredByUser(ctx context.Context, userID uint) ([]domain.Attendance, error)
}

type AttendanceService struct {
	repo AttendanceRepository
}

func NewAttendanceService(repo AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		repo: repo,
	}
}

// RecordResponse upserts the single attendance row for (practice, user).
// Only the user themselves or an admin may write it. The status is stored as
// given; no further validation happens here.
func (s *AttendanceService) RecordResponse(ctx context.Context, actor domain.User, practiceID, userID uint, status domain.AttendanceStatus, reason, notes string) (domain.Attendance, error) {
	if actor.ID != userID && !actor.IsAdmin() {
		return domain.Attendance{}, ErrPermissionDenied
	}

	existing, err := s.repo.FindAttendance(ctx, practiceID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			created, err := s.repo.CreateAttendance(ctx, domain.Attendance{
				PracticeID: practiceID,
				UserID:     userID,
				Status:     status,
				Reason:     reason,
				Notes:      notes,
			})
			if err != nil {
				return domain.Attendance{}, fmt.Errorf("s.repo.CreateAttendance -> %w", err)
			}

			return created, nil
		}

		return domain.Attendance{}, fmt.Errorf("s.repo.FindAttendance -> %w", err)
	}

	updated, err := s.repo.UpdateAttendance(ctx, existing.ID, status, reason, notes)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.repo.UpdateAttendance -> %w", err)
	}

	return updated, nil
}

func (s *AttendanceService) ListByPractice(ctx context.Context, practiceID uint) ([]domain.Attendance, error) {
	attendances, err := s.repo.FindAttendances(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAttendances -> %w", err)
	}

	return attendances, nil
}

// Unanswered lists the user's pending attendance requests, soonest practice
// first, for the dashboard.
func (s *AttendanceService) Unanswered(ctx context.Context, userID uint) ([]domain.Attendance, error) {
	attendances, err := s.repo.FindUnansweredByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindUnansweredByUser -> %w", err)
	}

	return attendances, nil
}
