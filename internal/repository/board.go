package repository

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
)

var (
	ErrBoardNotFound    = dao.ErrBoardNotFound
	ErrBoardNameExists  = dao.ErrBoardNameExists
	ErrSerialNumberUsed = dao.ErrSerialNumberUsed
)

type BoardDAO interface {
	Insert(ctx context.Context, board dao.Board) (dao.Board, error)
	FindByID(ctx context.Context, id uint) (dao.Board, error)
	FindAll(ctx context.Context) ([]dao.Board, error)
	CountByLocation(ctx context.Context, location string) (int64, error)
	FindAtPractice(ctx context.Context, location string, inboundBoardIDs []uint) ([]dao.Board, error)
	Update(ctx context.Context, board dao.Board) (dao.Board, error)
	BulkRelocate(ctx context.Context, boardIDs []uint, location, updatedBy string) (int, error)
	Delete(ctx context.Context, id uint) error
	FindHistories(ctx context.Context, boardID uint) ([]dao.UpdateHistory, error)
}

type BoardRepository struct {
	dao BoardDAO
}

func NewBoardRepository(dao BoardDAO) *BoardRepository {
	return &BoardRepository{
		dao: dao,
	}
}

func boardDomainToDAO(b domain.Board) dao.Board {
	return dao.Board{
		ID:           b.ID,
		Name:         b.Name,
		SerialNumber: b.SerialNumber,
		Location:     b.Location,
		UpdatedBy:    b.UpdatedBy,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func boardDAOToDomain(b dao.Board) domain.Board {
	return domain.Board{
		ID:           b.ID,
		Name:         b.Name,
		SerialNumber: b.SerialNumber,
		Location:     b.Location,
		UpdatedBy:    b.UpdatedBy,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func boardsDAOToDomain(boards []dao.Board) []domain.Board {
	result := make([]domain.Board, len(boards))
	for i, b := range boards {
		result[i] = boardDAOToDomain(b)
	}

	return result
}

func (r *BoardRepository) Create(ctx context.Context, board domain.Board) (domain.Board, error) {
	created, err := r.dao.Insert(ctx, boardDomainToDAO(board))
	if err != nil {
		return domain.Board{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return boardDAOToDomain(created), nil
}

func (r *BoardRepository) FindByID(ctx context.Context, id uint) (domain.Board, error) {
	board, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Board{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return boardDAOToDomain(board), nil
}

func (r *BoardRepository) FindAll(ctx context.Context) ([]domain.Board, error) {
	boards, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return boardsDAOToDomain(boards), nil
}

func (r *BoardRepository) CountByLocation(ctx context.Context, location string) (int, error) {
	count, err := r.dao.CountByLocation(ctx, location)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByLocation -> %w", err)
	}

	return int(count), nil
}

func (r *BoardRepository) FindAtPractice(ctx context.Context, location string, inboundBoardIDs []uint) ([]domain.Board, error) {
	boards, err := r.dao.FindAtPractice(ctx, location, inboundBoardIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAtPractice -> %w", err)
	}

	return boardsDAOToDomain(boards), nil
}

func (r *BoardRepository) Update(ctx context.Context, board domain.Board) (domain.Board, error) {
	updated, err := r.dao.Update(ctx, boardDomainToDAO(board))
	if err != nil {
		return domain.Board{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return boardDAOToDomain(updated), nil
}

func (r *BoardRepository) BulkRelocate(ctx context.Context, boardIDs []uint, location, updatedBy string) (int, error) {
	updated, err := r.dao.BulkRelocate(ctx, boardIDs, location, updatedBy)
	if err != nil {
		return 0, fmt.Errorf("r.dao.BulkRelocate -> %w", err)
	}

	return updated, nil
}

func (r *BoardRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *BoardRepository) FindHistories(ctx context.Context, boardID uint) ([]domain.UpdateHistory, error) {
	histories, err := r.dao.FindHistories(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindHistories -> %w", err)
	}

	result := make([]domain.UpdateHistory, len(histories))
	for i, h := range histories {
		result[i] = domain.UpdateHistory{
			ID:               h.ID,
			BoardID:          h.BoardID,
			PreviousLocation: h.PreviousLocation,
			NewLocation:      h.NewLocation,
			UpdatedBy:        h.UpdatedBy,
			CreatedAt:        h.CreatedAt,
		}
	}

	return result, nil
}
