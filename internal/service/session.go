package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var ErrSessionNotFound = repository.ErrSessionNotFound

type SessionRepository interface {
	Create(ctx context.Context, practiceID uint) (domain.Session, error)
	FindByID(ctx context.Context, id uint) (domain.Session, error)
	FindByPractice(ctx context.Context, practiceID uint) ([]domain.Session, error)
	AddMember(ctx context.Context, sessionID, userID uint) error
	RemoveMember(ctx context.Context, sessionID, userID uint) error
	Delete(ctx context.Context, id uint) error
}

type SessionUserDirectory interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type SessionPracticeDirectory interface {
	FindByID(ctx context.Context, id uint) (domain.Practice, error)
	FindAttendances(ctx context.Context, practiceID uint) ([]domain.Attendance, error)
}

type SessionService struct {
	repo      SessionRepository
	users     SessionUserDirectory
	practices SessionPracticeDirectory
}

func NewSessionService(repo SessionRepository, users SessionUserDirectory, practices SessionPracticeDirectory) *SessionService {
	return &SessionService{
		repo:      repo,
		users:     users,
		practices: practices,
	}
}

// AddSession appends a session numbered count+1. There is no upper bound on
// the number of sessions per practice.
func (s *SessionService) AddSession(ctx context.Context, practiceID uint) (domain.Session, error) {
	if _, err := s.practices.FindByID(ctx, practiceID); err != nil {
		return domain.Session{}, fmt.Errorf("s.practices.FindByID -> %w", err)
	}

	session, err := s.repo.Create(ctx, practiceID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return session, nil
}

// AssignMembers adds the given users to the session and returns the display
// names of those actually added. Users already in the session, and ids that
// do not resolve, are skipped silently.
//
// Attendance eligibility is NOT re-checked here: callers are expected to
// offer only assignable attendees. Supplying an absent user's id directly
// will assign them anyway.
func (s *SessionService) AssignMembers(ctx context.Context, sessionID uint, userIDs []uint) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, ErrValidation
	}

	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	members := make(map[uint]bool, len(session.Members))
	for _, m := range session.Members {
		members[m.ID] = true
	}

	var added []string
	for _, userID := range userIDs {
		if members[userID] {
			continue
		}

		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				continue
			}

			return nil, fmt.Errorf("s.users.FindByID -> %w", err)
		}

		if err := s.repo.AddMember(ctx, session.ID, user.ID); err != nil {
			return nil, fmt.Errorf("s.repo.AddMember -> %w", err)
		}

		members[user.ID] = true
		added = append(added, user.Username)
	}

	return added, nil
}

// UnassignMember is idempotent; removing a non-member is a no-op.
func (s *SessionService) UnassignMember(ctx context.Context, sessionID, userID uint) error {
	if _, err := s.repo.FindByID(ctx, sessionID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.RemoveMember(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	return nil
}

// DeleteSession removes the session and its membership rows; members and
// their attendances survive.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID uint) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.Delete(ctx, session.ID); err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return session, nil
}

// Unassigned returns the assignable attendees who belong to no session of the
// practice.
func (s *SessionService) Unassigned(ctx context.Context, practiceID uint) ([]domain.User, error) {
	attendances, err := s.practices.FindAttendances(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("s.practices.FindAttendances -> %w", err)
	}

	sessions, err := s.repo.FindByPractice(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByPractice -> %w", err)
	}

	var assignable []domain.User
	for _, a := range attendances {
		if a.Status.Assignable() {
			assignable = append(assignable, a.User)
		}
	}

	return UnassignedAttendees(assignable, sessions), nil
}
