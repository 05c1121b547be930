package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

type fakeAttendanceRepo struct {
	rows   map[uint]domain.Attendance
	nextID uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		rows:   make(map[uint]domain.Attendance),
		nextID: 1,
	}
}

func (f *fakeAttendanceRepo) FindAttendance(_ context.Context, practiceID, userID uint) (domain.Attendance, error) {
	for _, a := range f.rows {
		if a.PracticeID == practiceID && a.UserID == userID {
			return a, nil
		}
	}

	return domain.Attendance{}, repository.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) UpdateAttendance(_ context.Context, id uint, status domain.AttendanceStatus, reason, notes string) (domain.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return domain.Attendance{}, repository.ErrAttendanceNotFound
	}

	a.Status = status
	a.Reason = reason
	a.Notes = notes
	f.rows[id] = a

	return a, nil
}

func (f *fakeAttendanceRepo) CreateAttendance(_ context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	attendance.ID = f.nextID
	f.nextID++
	f.rows[attendance.ID] = attendance

	return attendance, nil
}

func (f *fakeAttendanceRepo) FindAttendances(_ context.Context, practiceID uint) ([]domain.Attendance, error) {
	var result []domain.Attendance
	for _, a := range f.rows {
		if a.PracticeID == practiceID {
			result = append(result, a)
		}
	}

	return result, nil
}

func (f *fakeAttendanceRepo) FindUnansweredByUser(_ context.Context, userID uint) ([]domain.Attendance, error) {
	var result []domain.Attendance
	for _, a := range f.rows {
		if a.UserID == userID && a.Status == domain.StatusUnanswered {
			result = append(result, a)
		}
	}

	return result, nil
}

func TestRecordResponseCreatesThenUpdates(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)
	actor := domain.User{ID: 7, Role: domain.RoleMember}

	created, err := svc.RecordResponse(context.Background(), actor, 1, 7, domain.StatusPresent, "", "")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPresent, created.Status)

	// Same (practice, user) updates in place rather than adding a row.
	updated, err := svc.RecordResponse(context.Background(), actor, 1, 7, domain.StatusAbsent, "exam week", "")
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, domain.StatusAbsent, updated.Status)
	require.Equal(t, "exam week", updated.Reason)
	require.Len(t, repo.rows, 1)
}

func TestRecordResponsePermission(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	member := domain.User{ID: 7, Role: domain.RoleMember}
	_, err := svc.RecordResponse(context.Background(), member, 1, 8, domain.StatusPresent, "", "")
	require.ErrorIs(t, err, ErrPermissionDenied)

	// Admins answer on anyone's behalf.
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	_, err = svc.RecordResponse(context.Background(), admin, 1, 8, domain.StatusPresent, "", "")
	require.NoError(t, err)
}

func TestUnanswered(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	repo.rows[1] = domain.Attendance{ID: 1, PracticeID: 1, UserID: 7, Status: domain.StatusUnanswered}
	repo.rows[2] = domain.Attendance{ID: 2, PracticeID: 2, UserID: 7, Status: domain.StatusPresent}
	repo.rows[3] = domain.Attendance{ID: 3, PracticeID: 3, UserID: 8, Status: domain.StatusUnanswered}
	svc := NewAttendanceService(repo)

	pending, err := svc.Unanswered(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, uint(1), pending[0].ID)
}
