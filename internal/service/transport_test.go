package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

type fakeTransportRepo struct {
	transports map[string]domain.Transport
	nextID     uint
	assigned   []domain.Transport
	failOn     map[uint]error
}

func newFakeTransportRepo() *fakeTransportRepo {
	return &fakeTransportRepo{
		transports: make(map[string]domain.Transport),
		failOn:     make(map[uint]error),
		nextID:     1,
	}
}

func transportKey(practiceID, boardID uint, direction domain.TransportDirection) string {
	return fmt.Sprintf("%d/%d/%s", practiceID, boardID, direction)
}

func (f *fakeTransportRepo) Assign(_ context.Context, practiceID, boardID, userID uint, direction domain.TransportDirection) (domain.Transport, domain.TransportOutcome, error) {
	if err := f.failOn[boardID]; err != nil {
		return domain.Transport{}, domain.TransportFailed, err
	}

	key := transportKey(practiceID, boardID, direction)
	if existing, ok := f.transports[key]; ok {
		if existing.UserID == userID {
			return existing, domain.TransportKept, nil
		}
		existing.UserID = userID
		f.transports[key] = existing
		return existing, domain.TransportRebound, nil
	}

	t := domain.Transport{
		ID:         f.nextID,
		PracticeID: practiceID,
		BoardID:    boardID,
		UserID:     userID,
		Direction:  direction,
	}
	f.nextID++
	f.transports[key] = t
	f.assigned = append(f.assigned, t)

	return t, domain.TransportCreated, nil
}

func (f *fakeTransportRepo) CreateIfAbsent(_ context.Context, practiceID, boardID, userID uint, direction domain.TransportDirection) (domain.Transport, bool, error) {
	key := transportKey(practiceID, boardID, direction)
	if existing, ok := f.transports[key]; ok {
		return existing, false, nil
	}

	t := domain.Transport{
		ID:         f.nextID,
		PracticeID: practiceID,
		BoardID:    boardID,
		UserID:     userID,
		Direction:  direction,
	}
	f.nextID++
	f.transports[key] = t
	f.assigned = append(f.assigned, t)

	return t, true, nil
}

func (f *fakeTransportRepo) Delete(_ context.Context, id uint) (domain.Transport, error) {
	for key, t := range f.transports {
		if t.ID == id {
			delete(f.transports, key)
			return t, nil
		}
	}

	return domain.Transport{}, repository.ErrTransportNotFound
}

func (f *fakeTransportRepo) FindByID(_ context.Context, id uint) (domain.Transport, error) {
	for _, t := range f.transports {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Transport{}, repository.ErrTransportNotFound
}

func (f *fakeTransportRepo) FindByPracticeAndDirection(_ context.Context, practiceID uint, direction domain.TransportDirection) ([]domain.Transport, error) {
	var result []domain.Transport
	for _, t := range f.transports {
		if t.PracticeID == practiceID && t.Direction == direction {
			result = append(result, t)
		}
	}

	return result, nil
}

type fakeUserDirectory struct {
	users map[uint]domain.User
}

func (f *fakeUserDirectory) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type fakePracticeSource struct {
	practice    domain.Practice
	attendances []domain.Attendance
}

func (f *fakePracticeSource) FindByID(_ context.Context, id uint) (domain.Practice, error) {
	if id != f.practice.ID {
		return domain.Practice{}, repository.ErrPracticeNotFound
	}

	return f.practice, nil
}

func (f *fakePracticeSource) FindAttendances(_ context.Context, _ uint) ([]domain.Attendance, error) {
	return f.attendances, nil
}

func present(userID uint, transportCount int) domain.Attendance {
	return domain.Attendance{
		PracticeID: 1,
		UserID:     userID,
		User:       domain.User{ID: userID, Username: fmt.Sprintf("u%d", userID), TransportCount: transportCount},
		Status:     domain.StatusPresent,
	}
}

func newLotteryService(repo *fakeTransportRepo, source *fakePracticeSource, seed int64) *TransportService {
	users := &fakeUserDirectory{users: map[uint]domain.User{}}
	for _, a := range source.attendances {
		users.users[a.UserID] = a.User
	}

	return NewTransportService(repo, users, source, rand.New(rand.NewSource(seed)))
}

func TestSelectionWeight(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 1.0, selectionWeight(0), 1e-9)
	require.InDelta(t, 0.25, selectionWeight(1), 1e-9)
	require.InDelta(t, 1.0/9.0, selectionWeight(2), 1e-9)

	// Strictly positive even for heavy carriers.
	require.Greater(t, selectionWeight(100), 0.0)
}

func TestRunLotteryAssignsDistinctWinners(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	source := &fakePracticeSource{
		practice: domain.Practice{ID: 1},
		attendances: []domain.Attendance{
			present(1, 0), present(2, 0), present(3, 0), present(4, 0),
		},
	}
	svc := newLotteryService(repo, source, 7)

	result, err := svc.RunLottery(context.Background(), 1, []uint{10, 11, 12})
	require.NoError(t, err)
	require.Len(t, result.Winners, 3)
	require.Len(t, result.Transports, 3)

	seen := make(map[uint]bool)
	for _, w := range result.Winners {
		require.False(t, seen[w.ID], "winner %d drawn twice", w.ID)
		seen[w.ID] = true
	}

	// Winner i carries board i of the request.
	for i, tr := range result.Transports {
		require.Equal(t, []uint{10, 11, 12}[i], tr.BoardID)
		require.Equal(t, result.Winners[i].ID, tr.UserID)
		require.Equal(t, domain.DirectionFrom, tr.Direction)
	}
}

func TestRunLotteryExcludesConfirmedAndOutbound(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	// User 2 already carries outbound, user 3 already has a confirmed return.
	repo.transports[transportKey(1, 50, domain.DirectionTo)] = domain.Transport{
		ID: 100, PracticeID: 1, BoardID: 50, UserID: 2, User: domain.User{ID: 2}, Direction: domain.DirectionTo,
	}
	repo.transports[transportKey(1, 51, domain.DirectionFrom)] = domain.Transport{
		ID: 101, PracticeID: 1, BoardID: 51, UserID: 3, User: domain.User{ID: 3}, Direction: domain.DirectionFrom,
	}

	source := &fakePracticeSource{
		practice:    domain.Practice{ID: 1},
		attendances: []domain.Attendance{present(1, 0), present(2, 0), present(3, 0)},
	}
	svc := newLotteryService(repo, source, 1)

	// Demand 1 is coverable by the primary pool (only user 1), so neither
	// the outbound carrier nor the confirmed returner may win.
	result, err := svc.RunLottery(context.Background(), 1, []uint{60})
	require.NoError(t, err)
	require.Len(t, result.Winners, 1)
	require.Equal(t, uint(1), result.Winners[0].ID)
}

func TestRunLotteryBackfillsWithOutboundCarriers(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	repo.transports[transportKey(1, 50, domain.DirectionTo)] = domain.Transport{
		ID: 100, PracticeID: 1, BoardID: 50, UserID: 2, User: domain.User{ID: 2, Username: "u2"}, Direction: domain.DirectionTo,
	}

	source := &fakePracticeSource{
		practice:    domain.Practice{ID: 1},
		attendances: []domain.Attendance{present(1, 0), present(2, 0)},
	}
	svc := newLotteryService(repo, source, 3)

	// Primary pool is just user 1; the outbound carrier must back-fill.
	result, err := svc.RunLottery(context.Background(), 1, []uint{60, 61})
	require.NoError(t, err)
	require.Len(t, result.Winners, 2)

	winners := map[uint]bool{}
	for _, w := range result.Winners {
		winners[w.ID] = true
	}
	require.True(t, winners[1])
	require.True(t, winners[2])
}

func TestRunLotteryInsufficientCandidates(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	source := &fakePracticeSource{
		practice:    domain.Practice{ID: 1},
		attendances: []domain.Attendance{present(1, 0), {PracticeID: 1, UserID: 2, User: domain.User{ID: 2}, Status: domain.StatusAbsent}},
	}
	svc := newLotteryService(repo, source, 1)

	_, err := svc.RunLottery(context.Background(), 1, []uint{60, 61})

	var insufficient *InsufficientCandidatesError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, 2, insufficient.Needed)
	require.Equal(t, 1, insufficient.Available)

	// No partial assignment happened.
	require.Empty(t, repo.assigned)
}

func TestRunLotteryFavorsLightCarriers(t *testing.T) {
	t.Parallel()

	// Two fresh members against one with three prior carries: weights are
	// 1, 1 and 1/16. Drawing two carriers per trial, the heavy carrier
	// should land a duty in under 9% of trials.
	wins := make(map[uint]int)
	const trials = 10000

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < trials; i++ {
		repo := newFakeTransportRepo()
		source := &fakePracticeSource{
			practice:    domain.Practice{ID: 1},
			attendances: []domain.Attendance{present(1, 0), present(2, 0), present(3, 3)},
		}
		users := &fakeUserDirectory{users: map[uint]domain.User{}}
		svc := NewTransportService(repo, users, source, rnd)

		result, err := svc.RunLottery(context.Background(), 1, []uint{60, 61})
		require.NoError(t, err)
		for _, w := range result.Winners {
			wins[w.ID]++
		}
	}

	require.Greater(t, wins[1], 9000)
	require.Greater(t, wins[2], 9000)
	require.Less(t, wins[3], 2000)
}

func TestAssignTransportPerItemOutcomes(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	repo.failOn[12] = fmt.Errorf("board 12 does not exist")
	// Board 11 is already bound to user 1.
	repo.transports[transportKey(1, 11, domain.DirectionTo)] = domain.Transport{
		ID: 5, PracticeID: 1, BoardID: 11, UserID: 1, Direction: domain.DirectionTo,
	}

	source := &fakePracticeSource{practice: domain.Practice{ID: 1}}
	users := &fakeUserDirectory{users: map[uint]domain.User{
		2: {ID: 2, Username: "u2"},
	}}
	svc := NewTransportService(repo, users, source, rand.New(rand.NewSource(1)))

	results, err := svc.AssignTransport(context.Background(), 1, 2, []uint{10, 11, 12, 13}, domain.DirectionTo)
	require.NoError(t, err)
	require.Len(t, results, 4)

	require.Equal(t, domain.TransportCreated, results[0].Outcome)
	require.Equal(t, domain.TransportRebound, results[1].Outcome)
	require.Equal(t, domain.TransportFailed, results[2].Outcome)
	require.NotEmpty(t, results[2].Detail)
	// A failure does not stop later items.
	require.Equal(t, domain.TransportCreated, results[3].Outcome)
}

func TestAssignTransportKeptIsNoOp(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	repo.transports[transportKey(1, 11, domain.DirectionTo)] = domain.Transport{
		ID: 5, PracticeID: 1, BoardID: 11, UserID: 2, Direction: domain.DirectionTo,
	}

	source := &fakePracticeSource{practice: domain.Practice{ID: 1}}
	users := &fakeUserDirectory{users: map[uint]domain.User{2: {ID: 2}}}
	svc := NewTransportService(repo, users, source, nil)

	results, err := svc.AssignTransport(context.Background(), 1, 2, []uint{11}, domain.DirectionTo)
	require.NoError(t, err)
	require.Equal(t, domain.TransportKept, results[0].Outcome)
}

func TestAssignTransportUnknownCarrier(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	source := &fakePracticeSource{practice: domain.Practice{ID: 1}}
	users := &fakeUserDirectory{users: map[uint]domain.User{}}
	svc := NewTransportService(repo, users, source, nil)

	_, err := svc.AssignTransport(context.Background(), 1, 99, []uint{10}, domain.DirectionTo)
	require.ErrorIs(t, err, ErrCarrierNotFound)
}

func TestUnassignTransportOwnership(t *testing.T) {
	t.Parallel()

	repo := newFakeTransportRepo()
	repo.transports[transportKey(1, 11, domain.DirectionFrom)] = domain.Transport{
		ID: 5, PracticeID: 1, BoardID: 11, UserID: 2, Direction: domain.DirectionFrom,
	}

	source := &fakePracticeSource{practice: domain.Practice{ID: 1}}
	users := &fakeUserDirectory{users: map[uint]domain.User{}}
	svc := NewTransportService(repo, users, source, nil)

	// A stranger cannot release someone else's duty.
	_, err := svc.UnassignTransport(context.Background(), domain.User{ID: 3, Role: domain.RoleMember}, 5)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// An admin can.
	deleted, err := svc.UnassignTransport(context.Background(), domain.User{ID: 3, Role: domain.RoleAdmin}, 5)
	require.NoError(t, err)
	require.Equal(t, uint(5), deleted.ID)
	require.Empty(t, repo.transports)
}
