package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/pkg/natsort"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var (
	ErrBoardNotFound    = repository.ErrBoardNotFound
	ErrBoardNameExists  = repository.ErrBoardNameExists
	ErrSerialNumberUsed = repository.ErrSerialNumberUsed
)

type BoardRepository interface {
	Create(ctx context.Context, board domain.Board) (domain.Board, error)
	FindByID(ctx context.Context, id uint) (domain.Board, error)
	FindAll(ctx context.Context) ([]domain.Board, error)
	Update(ctx context.Context, board domain.Board) (domain.Board, error)
	BulkRelocate(ctx context.Context, boardIDs []uint, location, updatedBy string) (int, error)
	Delete(ctx context.Context, id uint) error
	FindHistories(ctx context.Context, boardID uint) ([]domain.UpdateHistory, error)
}

type BoardService struct {
	repo BoardRepository
}

func NewBoardService(repo BoardRepository) *BoardService {
	return &BoardService{
		repo: repo,
	}
}

func (s *BoardService) Create(ctx context.Context, board domain.Board) (domain.Board, error) {
	if board.Name == "" || board.Location == "" {
		return domain.Board{}, ErrValidation
	}

	created, err := s.repo.Create(ctx, board)
	if err != nil {
		return domain.Board{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("board registered",
		zap.Uint("board_id", created.ID),
		zap.String("name", created.Name))

	return created, nil
}

func (s *BoardService) Get(ctx context.Context, id uint) (domain.Board, error) {
	board, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Board{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return board, nil
}

// List returns all boards in natural name order plus a per-location tally.
// "Board 2" sorts before "Board 10".
func (s *BoardService) List(ctx context.Context) ([]domain.Board, map[string]int, error) {
	boards, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	sort.SliceStable(boards, func(i, j int) bool {
		return natsort.Less(boards[i].Name, boards[j].Name)
	})

	counts := make(map[string]int)
	for _, b := range boards {
		counts[b.Location]++
	}

	return boards, counts, nil
}

// Update rewrites the board's editable fields. A location or holder change
// gets a history row; the repository decides that.
func (s *BoardService) Update(ctx context.Context, board domain.Board) (domain.Board, error) {
	if board.Name == "" || board.Location == "" {
		return domain.Board{}, ErrValidation
	}

	updated, err := s.repo.Update(ctx, board)
	if err != nil {
		return domain.Board{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// BulkRelocate moves the given boards to one location and returns how many
// rows actually changed. Unknown ids are skipped.
func (s *BoardService) BulkRelocate(ctx context.Context, boardIDs []uint, location, updatedBy string) (int, error) {
	if len(boardIDs) == 0 || location == "" {
		return 0, ErrValidation
	}

	moved, err := s.repo.BulkRelocate(ctx, boardIDs, location, updatedBy)
	if err != nil {
		return 0, fmt.Errorf("s.repo.BulkRelocate -> %w", err)
	}

	zap.L().Info("boards relocated",
		zap.Int("moved", moved),
		zap.String("location", location))

	return moved, nil
}

func (s *BoardService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *BoardService) Histories(ctx context.Context, boardID uint) ([]domain.UpdateHistory, error) {
	if _, err := s.repo.FindByID(ctx, boardID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	histories, err := s.repo.FindHistories(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindHistories -> %w", err)
	}

	return histories, nil
}
