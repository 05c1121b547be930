package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

func TestRequiredTransportBoards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		maxSessionSize   int
		boardsAtLocation int
		want             int
	}{
		{"shortfall", 5, 2, 3},
		{"exact cover", 4, 4, 0},
		{"surplus clamps to zero", 2, 6, 0},
		{"no sessions", 0, 3, 0},
		{"empty location", 3, 0, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, RequiredTransportBoards(tt.maxSessionSize, tt.boardsAtLocation))
		})
	}
}

func TestMaxSessionSize(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, MaxSessionSize(nil))

	sessions := []domain.Session{
		{Members: []domain.User{{ID: 1}, {ID: 2}}},
		{Members: []domain.User{{ID: 3}, {ID: 4}, {ID: 5}}},
		{Members: nil},
	}
	require.Equal(t, 3, MaxSessionSize(sessions))
}

func TestUnassignedAttendees(t *testing.T) {
	t.Parallel()

	assignable := []domain.User{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	sessions := []domain.Session{
		{Members: []domain.User{{ID: 2}}},
		{Members: []domain.User{{ID: 4}}},
	}

	unassigned := UnassignedAttendees(assignable, sessions)
	require.Len(t, unassigned, 2)
	// Display order of the attendee list is preserved.
	require.Equal(t, uint(1), unassigned[0].ID)
	require.Equal(t, uint(3), unassigned[1].ID)

	// A session member who is not assignable does not resurface.
	require.Empty(t, UnassignedAttendees(nil, sessions))
}

type fakePracticeRepo struct {
	practices   map[uint]domain.Practice
	attendances []domain.Attendance
	created     *domain.Practice
	createdIDs  []uint
}

func (f *fakePracticeRepo) CreateWithAttendances(_ context.Context, practice domain.Practice, userIDs []uint) (domain.Practice, error) {
	practice.ID = 1
	f.created = &practice
	f.createdIDs = userIDs

	return practice, nil
}

func (f *fakePracticeRepo) FindByID(_ context.Context, id uint) (domain.Practice, error) {
	p, ok := f.practices[id]
	if !ok {
		return domain.Practice{}, repository.ErrPracticeNotFound
	}

	return p, nil
}

func (f *fakePracticeRepo) FindAll(_ context.Context) ([]domain.Practice, error) {
	var result []domain.Practice
	for _, p := range f.practices {
		result = append(result, p)
	}

	return result, nil
}

func (f *fakePracticeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.practices[id]; !ok {
		return repository.ErrPracticeNotFound
	}
	delete(f.practices, id)

	return nil
}

func (f *fakePracticeRepo) FindAttendances(_ context.Context, _ uint) ([]domain.Attendance, error) {
	return f.attendances, nil
}

func (f *fakePracticeRepo) FindAttendance(_ context.Context, _, userID uint) (domain.Attendance, error) {
	for _, a := range f.attendances {
		if a.UserID == userID {
			return a, nil
		}
	}

	return domain.Attendance{}, repository.ErrAttendanceNotFound
}

type fakeTargetDirectory struct {
	users []domain.User
}

func (f *fakeTargetDirectory) FindByTeamAndGenerations(_ context.Context, _ uint, _ []string) ([]domain.User, error) {
	return f.users, nil
}

type fakeBoardDirectory struct {
	count  int
	boards []domain.Board
}

func (f *fakeBoardDirectory) CountByLocation(_ context.Context, _ string) (int, error) {
	return f.count, nil
}

func (f *fakeBoardDirectory) FindAtPractice(_ context.Context, _ string, _ []uint) ([]domain.Board, error) {
	return f.boards, nil
}

type fakeSessionDirectory struct {
	sessions []domain.Session
}

func (f *fakeSessionDirectory) FindByPractice(_ context.Context, _ uint) ([]domain.Session, error) {
	return f.sessions, nil
}

type fakeTransportDirectory struct {
	to, from []domain.Transport
}

func (f *fakeTransportDirectory) FindByPracticeAndDirection(_ context.Context, _ uint, direction domain.TransportDirection) ([]domain.Transport, error) {
	if direction == domain.DirectionTo {
		return f.to, nil
	}

	return f.from, nil
}

func TestPracticeCreateFansOutAttendances(t *testing.T) {
	t.Parallel()

	repo := &fakePracticeRepo{practices: map[uint]domain.Practice{}}
	targets := &fakeTargetDirectory{users: []domain.User{{ID: 3}, {ID: 5}, {ID: 8}}}
	svc := NewPracticeService(repo, targets, &fakeBoardDirectory{}, &fakeSessionDirectory{}, &fakeTransportDirectory{})

	practice, count, err := svc.Create(context.Background(), domain.Practice{
		Title:    "morning",
		Location: "lake",
		TeamID:   1,
	}, []string{"2023"})
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Equal(t, uint(1), practice.ID)
	require.Equal(t, []uint{3, 5, 8}, repo.createdIDs)
}

func TestPracticeCreateNoTargets(t *testing.T) {
	t.Parallel()

	repo := &fakePracticeRepo{practices: map[uint]domain.Practice{}}
	svc := NewPracticeService(repo, &fakeTargetDirectory{}, &fakeBoardDirectory{}, &fakeSessionDirectory{}, &fakeTransportDirectory{})

	_, _, err := svc.Create(context.Background(), domain.Practice{
		Title:    "morning",
		Location: "lake",
		TeamID:   1,
	}, []string{"1999"})
	require.ErrorIs(t, err, ErrNoTargetUsers)
	require.Nil(t, repo.created)
}

func TestPracticeDetailDerivedViews(t *testing.T) {
	t.Parallel()

	repo := &fakePracticeRepo{
		practices: map[uint]domain.Practice{1: {ID: 1, Location: "lake"}},
		attendances: []domain.Attendance{
			{UserID: 1, User: domain.User{ID: 1}, Status: domain.StatusPresent},
			{UserID: 2, User: domain.User{ID: 2}, Status: domain.StatusLateLeave},
			{UserID: 3, User: domain.User{ID: 3}, Status: domain.StatusAbsent},
			{UserID: 4, User: domain.User{ID: 4}, Status: domain.StatusUnanswered},
		},
	}
	sessions := &fakeSessionDirectory{sessions: []domain.Session{
		{ID: 10, Members: []domain.User{{ID: 1}, {ID: 9}, {ID: 8}, {ID: 7}, {ID: 6}}},
	}}
	boards := &fakeBoardDirectory{count: 2, boards: []domain.Board{{ID: 20}, {ID: 21}}}
	svc := NewPracticeService(repo, &fakeTargetDirectory{}, boards, sessions, &fakeTransportDirectory{})

	detail, err := svc.Detail(context.Background(), 1, 2)
	require.NoError(t, err)

	// 5-member session against 2 boards on site leaves 3 to carry in.
	require.Equal(t, 5, detail.MaxSessionSize)
	require.Equal(t, 2, detail.BoardsAtLocation)
	require.Equal(t, 3, detail.RequiredTransportBoards)

	require.Len(t, detail.PresentAttendees, 1)
	require.Len(t, detail.AssignableAttendees, 2)
	// User 1 is in a session; user 2 (late_leave) remains unassigned.
	require.Len(t, detail.UnassignedAttendees, 1)
	require.Equal(t, uint(2), detail.UnassignedAttendees[0].ID)

	require.NotNil(t, detail.ViewerAttendance)
	require.Equal(t, uint(2), detail.ViewerAttendance.UserID)
}

func TestPracticeDetailNotFound(t *testing.T) {
	t.Parallel()

	repo := &fakePracticeRepo{practices: map[uint]domain.Practice{}}
	svc := NewPracticeService(repo, &fakeTargetDirectory{}, &fakeBoardDirectory{}, &fakeSessionDirectory{}, &fakeTransportDirectory{})

	_, err := svc.Detail(context.Background(), 42, 1)
	require.ErrorIs(t, err, ErrPracticeNotFound)
}
