package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

type fakeSessionRepo struct {
	sessions map[uint]*domain.Session
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[uint]*domain.Session),
		nextID:   1,
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, practiceID uint) (domain.Session, error) {
	number := 0
	for _, s := range f.sessions {
		if s.PracticeID == practiceID {
			number++
		}
	}

	s := &domain.Session{ID: f.nextID, PracticeID: practiceID, SessionNumber: number + 1}
	f.sessions[f.nextID] = s
	f.nextID++

	return *s, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}

	return *s, nil
}

func (f *fakeSessionRepo) FindByPractice(_ context.Context, practiceID uint) ([]domain.Session, error) {
	var result []domain.Session
	for _, s := range f.sessions {
		if s.PracticeID == practiceID {
			result = append(result, *s)
		}
	}

	return result, nil
}

func (f *fakeSessionRepo) AddMember(_ context.Context, sessionID, userID uint) error {
	s := f.sessions[sessionID]
	s.Members = append(s.Members, domain.User{ID: userID, Username: usernameFor(userID)})

	return nil
}

func (f *fakeSessionRepo) RemoveMember(_ context.Context, sessionID, userID uint) error {
	s := f.sessions[sessionID]
	for i, m := range s.Members {
		if m.ID == userID {
			s.Members = append(s.Members[:i], s.Members[i+1:]...)
			return nil
		}
	}

	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)

	return nil
}

func usernameFor(id uint) string {
	return map[uint]string{1: "asa", 2: "kei", 3: "rin"}[id]
}

type fakeSessionPractices struct {
	practices   map[uint]domain.Practice
	attendances []domain.Attendance
}

func (f *fakeSessionPractices) FindByID(_ context.Context, id uint) (domain.Practice, error) {
	p, ok := f.practices[id]
	if !ok {
		return domain.Practice{}, repository.ErrPracticeNotFound
	}

	return p, nil
}

func (f *fakeSessionPractices) FindAttendances(_ context.Context, _ uint) ([]domain.Attendance, error) {
	return f.attendances, nil
}

func newSessionService(repo *fakeSessionRepo, practices *fakeSessionPractices) *SessionService {
	users := &fakeUserDirectory{users: map[uint]domain.User{
		1: {ID: 1, Username: "asa"},
		2: {ID: 2, Username: "kei"},
		3: {ID: 3, Username: "rin"},
	}}

	return NewSessionService(repo, users, practices)
}

func TestAddSessionNumbersSequentially(t *testing.T) {
	t.Parallel()

	repo := newFakeSessionRepo()
	practices := &fakeSessionPractices{practices: map[uint]domain.Practice{1: {ID: 1}}}
	svc := newSessionService(repo, practices)

	first, err := svc.AddSession(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, first.SessionNumber)

	second, err := svc.AddSession(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, second.SessionNumber)

	_, err = svc.AddSession(context.Background(), 99)
	require.ErrorIs(t, err, ErrPracticeNotFound)
}

func TestAssignMembersSkipsDuplicatesAndUnknowns(t *testing.T) {
	t.Parallel()

	repo := newFakeSessionRepo()
	practices := &fakeSessionPractices{practices: map[uint]domain.Practice{1: {ID: 1}}}
	svc := newSessionService(repo, practices)

	session, err := svc.AddSession(context.Background(), 1)
	require.NoError(t, err)

	added, err := svc.AssignMembers(context.Background(), session.ID, []uint{1, 2})
	require.NoError(t, err)
	require.Equal(t, []string{"asa", "kei"}, added)

	// User 1 is already in; user 99 does not exist; only user 3 lands.
	added, err = svc.AssignMembers(context.Background(), session.ID, []uint{1, 99, 3})
	require.NoError(t, err)
	require.Equal(t, []string{"rin"}, added)

	got, err := svc.repo.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 3)
}

func TestUnassignMemberIdempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeSessionRepo()
	practices := &fakeSessionPractices{practices: map[uint]domain.Practice{1: {ID: 1}}}
	svc := newSessionService(repo, practices)

	session, err := svc.AddSession(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.AssignMembers(context.Background(), session.ID, []uint{1})
	require.NoError(t, err)

	require.NoError(t, svc.UnassignMember(context.Background(), session.ID, 1))
	// Removing again is a no-op, not an error.
	require.NoError(t, svc.UnassignMember(context.Background(), session.ID, 1))
}

func TestUnassignedSetDifference(t *testing.T) {
	t.Parallel()

	repo := newFakeSessionRepo()
	practices := &fakeSessionPractices{
		practices: map[uint]domain.Practice{1: {ID: 1}},
		attendances: []domain.Attendance{
			{UserID: 1, User: domain.User{ID: 1}, Status: domain.StatusPresent},
			{UserID: 2, User: domain.User{ID: 2}, Status: domain.StatusLateLeave},
			{UserID: 3, User: domain.User{ID: 3}, Status: domain.StatusAbsent},
		},
	}
	svc := newSessionService(repo, practices)

	session, err := svc.AddSession(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.AssignMembers(context.Background(), session.ID, []uint{1})
	require.NoError(t, err)

	unassigned, err := svc.Unassigned(context.Background(), 1)
	require.NoError(t, err)
	// Absent user 3 never counts; assigned user 1 is covered; 2 remains.
	require.Len(t, unassigned, 1)
	require.Equal(t, uint(2), unassigned[0].ID)
}

func TestDeleteSessionKeepsMembers(t *testing.T) {
	t.Parallel()

	repo := newFakeSessionRepo()
	practices := &fakeSessionPractices{practices: map[uint]domain.Practice{1: {ID: 1}}}
	svc := newSessionService(repo, practices)

	session, err := svc.AddSession(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.AssignMembers(context.Background(), session.ID, []uint{1, 2})
	require.NoError(t, err)

	deleted, err := svc.DeleteSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, deleted.Members, 2)

	_, err = svc.DeleteSession(context.Background(), session.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
