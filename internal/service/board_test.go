package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

type fakeBoardRepo struct {
	boards    map[uint]domain.Board
	histories map[uint][]domain.UpdateHistory
	nextID    uint
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{
		boards:    make(map[uint]domain.Board),
		histories: make(map[uint][]domain.UpdateHistory),
		nextID:    1,
	}
}

func (f *fakeBoardRepo) Create(_ context.Context, board domain.Board) (domain.Board, error) {
	for _, b := range f.boards {
		if b.Name == board.Name {
			return domain.Board{}, repository.ErrBoardNameExists
		}
	}

	board.ID = f.nextID
	f.nextID++
	f.boards[board.ID] = board

	return board, nil
}

func (f *fakeBoardRepo) FindByID(_ context.Context, id uint) (domain.Board, error) {
	b, ok := f.boards[id]
	if !ok {
		return domain.Board{}, repository.ErrBoardNotFound
	}

	return b, nil
}

func (f *fakeBoardRepo) FindAll(_ context.Context) ([]domain.Board, error) {
	var result []domain.Board
	for _, b := range f.boards {
		result = append(result, b)
	}

	return result, nil
}

func (f *fakeBoardRepo) Update(_ context.Context, board domain.Board) (domain.Board, error) {
	if _, ok := f.boards[board.ID]; !ok {
		return domain.Board{}, repository.ErrBoardNotFound
	}
	f.boards[board.ID] = board

	return board, nil
}

func (f *fakeBoardRepo) BulkRelocate(_ context.Context, boardIDs []uint, location, updatedBy string) (int, error) {
	moved := 0
	for _, id := range boardIDs {
		b, ok := f.boards[id]
		if !ok || b.Location == location {
			continue
		}

		f.histories[id] = append(f.histories[id], domain.UpdateHistory{
			BoardID:          id,
			PreviousLocation: b.Location,
			NewLocation:      location,
			UpdatedBy:        updatedBy,
		})
		b.Location = location
		b.UpdatedBy = updatedBy
		f.boards[id] = b
		moved++
	}

	return moved, nil
}

func (f *fakeBoardRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.boards[id]; !ok {
		return repository.ErrBoardNotFound
	}
	delete(f.boards, id)

	return nil
}

func (f *fakeBoardRepo) FindHistories(_ context.Context, boardID uint) ([]domain.UpdateHistory, error) {
	return f.histories[boardID], nil
}

func TestBoardListNaturalOrderAndCounts(t *testing.T) {
	t.Parallel()

	repo := newFakeBoardRepo()
	svc := NewBoardService(repo)

	for _, b := range []domain.Board{
		{Name: "Board 10", Location: "clubhouse"},
		{Name: "Board 2", Location: "lake"},
		{Name: "Board 1", Location: "clubhouse"},
	} {
		_, err := svc.Create(context.Background(), b)
		require.NoError(t, err)
	}

	boards, counts, err := svc.List(context.Background())
	require.NoError(t, err)

	names := make([]string, len(boards))
	for i, b := range boards {
		names[i] = b.Name
	}
	require.Equal(t, []string{"Board 1", "Board 2", "Board 10"}, names)

	require.Equal(t, map[string]int{"clubhouse": 2, "lake": 1}, counts)
}

func TestBoardCreateValidation(t *testing.T) {
	t.Parallel()

	svc := NewBoardService(newFakeBoardRepo())

	_, err := svc.Create(context.Background(), domain.Board{Location: "lake"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), domain.Board{Name: "Board 1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestBoardCreateDuplicateName(t *testing.T) {
	t.Parallel()

	svc := NewBoardService(newFakeBoardRepo())

	_, err := svc.Create(context.Background(), domain.Board{Name: "Board 1", Location: "lake"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.Board{Name: "Board 1", Location: "clubhouse"})
	require.ErrorIs(t, err, ErrBoardNameExists)
}

func TestBulkRelocateSkipsUnknownAndUnmoved(t *testing.T) {
	t.Parallel()

	repo := newFakeBoardRepo()
	svc := NewBoardService(repo)

	one, err := svc.Create(context.Background(), domain.Board{Name: "Board 1", Location: "clubhouse"})
	require.NoError(t, err)
	two, err := svc.Create(context.Background(), domain.Board{Name: "Board 2", Location: "lake"})
	require.NoError(t, err)

	// Board 2 is already at the lake; id 99 does not exist.
	moved, err := svc.BulkRelocate(context.Background(), []uint{one.ID, two.ID, 99}, "lake", "asa")
	require.NoError(t, err)
	require.Equal(t, 1, moved)

	histories, err := svc.Histories(context.Background(), one.ID)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	require.Equal(t, "clubhouse", histories[0].PreviousLocation)
	require.Equal(t, "lake", histories[0].NewLocation)

	_, err = svc.BulkRelocate(context.Background(), nil, "lake", "asa")
	require.ErrorIs(t, err, ErrValidation)
}

func TestBoardHistoriesUnknownBoard(t *testing.T) {
	t.Parallel()

	svc := NewBoardService(newFakeBoardRepo())

	_, err := svc.Histories(context.Background(), 42)
	require.ErrorIs(t, err, ErrBoardNotFound)
}
