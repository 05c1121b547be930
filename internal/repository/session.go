package repository

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, practiceID uint) (dao.Session, error)
	FindByID(ctx context.Context, id uint) (dao.Session, error)
	FindByPractice(ctx context.Context, practiceID uint) ([]dao.Session, error)
	AddMember(ctx context.Context, sessionID, userID uint) error
	RemoveMember(ctx context.Context, sessionID, userID uint) error
	Delete(ctx context.Context, id uint) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func sessionDAOToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:            s.ID,
		PracticeID:    s.PracticeID,
		SessionNumber: s.SessionNumber,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Members:       usersDAOToDomain(s.Members),
	}
}

func (r *SessionRepository) Create(ctx context.Context, practiceID uint) (domain.Session, error) {
	session, err := r.dao.Insert(ctx, practiceID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return sessionDAOToDomain(session), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.Session, error) {
	session, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return sessionDAOToDomain(session), nil
}

func (r *SessionRepository) FindByPractice(ctx context.Context, practiceID uint) ([]domain.Session, error) {
	sessions, err := r.dao.FindByPractice(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPractice -> %w", err)
	}

	result := make([]domain.Session, len(sessions))
	for i, s := range sessions {
		result[i] = sessionDAOToDomain(s)
	}

	return result, nil
}

func (r *SessionRepository) AddMember(ctx context.Context, sessionID, userID uint) error {
	if err := r.dao.AddMember(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("r.dao.AddMember -> %w", err)
	}

	return nil
}

func (r *SessionRepository) RemoveMember(ctx context.Context, sessionID, userID uint) error {
	if err := r.dao.RemoveMember(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("r.dao.RemoveMember -> %w", err)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
