package repository

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
)

var ErrTransportNotFound = dao.ErrTransportNotFound

type TransportDAO interface {
	Assign(ctx context.Context, practiceID, boardID, userID uint, direction string) (dao.Transport, string, error)
	InsertIfAbsent(ctx context.Context, practiceID, boardID, userID uint, direction string) (dao.Transport, bool, error)
	Delete(ctx context.Context, id uint) (dao.Transport, error)
	FindByID(ctx context.Context, id uint) (dao.Transport, error)
	FindByPracticeAndDirection(ctx context.Context, practiceID uint, direction string) ([]dao.Transport, error)
}

type TransportRepository struct {
	dao TransportDAO
}

func NewTransportRepository(dao TransportDAO) *TransportRepository {
	return &TransportRepository{
		dao: dao,
	}
}

func transportDAOToDomain(t dao.Transport) domain.Transport {
	return domain.Transport{
		ID:         t.ID,
		PracticeID: t.PracticeID,
		UserID:     t.UserID,
		User:       userDAOToDomain(t.User),
		BoardID:    t.BoardID,
		Board:      boardDAOToDomain(t.Board),
		Direction:  domain.TransportDirection(t.Direction),
	}
}

// Assign upserts the (practice, board, direction) record for the carrier and
// reports whether the record was created, rebound from another carrier, or
// already held by this carrier.
func (r *TransportRepository) Assign(ctx context.Context, practiceID, boardID, userID uint, direction domain.TransportDirection) (domain.Transport, domain.TransportOutcome, error) {
	transport, outcome, err := r.dao.Assign(ctx, practiceID, boardID, userID, string(direction))
	if err != nil {
		return domain.Transport{}, domain.TransportFailed, fmt.Errorf("r.dao.Assign -> %w", err)
	}

	var domainOutcome domain.TransportOutcome
	switch outcome {
	case dao.AssignCreated:
		domainOutcome = domain.TransportCreated
	case dao.AssignRebound:
		domainOutcome = domain.TransportRebound
	default:
		domainOutcome = domain.TransportKept
	}

	return transportDAOToDomain(transport), domainOutcome, nil
}

func (r *TransportRepository) CreateIfAbsent(ctx context.Context, practiceID, boardID, userID uint, direction domain.TransportDirection) (domain.Transport, bool, error) {
	transport, created, err := r.dao.InsertIfAbsent(ctx, practiceID, boardID, userID, string(direction))
	if err != nil {
		return domain.Transport{}, false, fmt.Errorf("r.dao.InsertIfAbsent -> %w", err)
	}

	return transportDAOToDomain(transport), created, nil
}

func (r *TransportRepository) Delete(ctx context.Context, id uint) (domain.Transport, error) {
	transport, err := r.dao.Delete(ctx, id)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return transportDAOToDomain(transport), nil
}

func (r *TransportRepository) FindByID(ctx context.Context, id uint) (domain.Transport, error) {
	transport, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return transportDAOToDomain(transport), nil
}

func (r *TransportRepository) FindByPracticeAndDirection(ctx context.Context, practiceID uint, direction domain.TransportDirection) ([]domain.Transport, error) {
	transports, err := r.dao.FindByPracticeAndDirection(ctx, practiceID, string(direction))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPracticeAndDirection -> %w", err)
	}

	result := make([]domain.Transport, len(transports))
	for i, t := range transports {
		result[i] = transportDAOToDomain(t)
	}

	return result, nil
}
