package repository

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
)

var (
	ErrPracticeNotFound   = dao.ErrPracticeNotFound
	ErrAttendanceNotFound = dao.ErrAttendanceNotFound
)

type PracticeDAO interface {
	InsertWithAttendances(ctx context.Context, practice dao.Practice, userIDs []uint) (dao.Practice, error)
	FindByID(ctx context.Context, id uint) (dao.Practice, error)
	FindAll(ctx context.Context) ([]dao.Practice, error)
	Delete(ctx context.Context, id uint) error
	FindAttendances(ctx context.Context, practiceID uint) ([]dao.Attendance, error)
	FindAttendanceByID(ctx context.Context, id uint) (dao.Attendance, error)
	FindAttendance(ctx context.Context, practiceID, userID uint) (dao.Attendance, error)
	UpdateAttendance(ctx context.Context, id uint, status, reason, notes string) (dao.Attendance, error)
	InsertAttendance(ctx context.Context, attendance dao.Attendance) (dao.Attendance, error)
	FindUnansweredByUser(ctx context.Context, userID uint) ([]dao.Attendance, error)
}

type PracticeRepository struct {
	dao PracticeDAO
}

func NewPracticeRepository(dao PracticeDAO) *PracticeRepository {
	return &PracticeRepository{
		dao: dao,
	}
}

func practiceDAOToDomain(p dao.Practice) domain.Practice {
	return domain.Practice{
		ID:        p.ID,
		Title:     p.Title,
		Date:      p.Date,
		Location:  p.Location,
		TeamID:    p.TeamID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func attendanceDAOToDomain(a dao.Attendance) domain.Attendance {
	return domain.Attendance{
		ID:         a.ID,
		PracticeID: a.PracticeID,
		UserID:     a.UserID,
		User:       userDAOToDomain(a.User),
		Status:     domain.AttendanceStatus(a.Status),
		Reason:     a.Reason,
		Notes:      a.Notes,
	}
}

func attendancesDAOToDomain(attendances []dao.Attendance) []domain.Attendance {
	result := make([]domain.Attendance, len(attendances))
	for i, a := range attendances {
		result[i] = attendanceDAOToDomain(a)
	}

	return result
}

func (r *PracticeRepository) CreateWithAttendances(ctx context.Context, practice domain.Practice, userIDs []uint) (domain.Practice, error) {
	created, err := r.dao.InsertWithAttendances(ctx, dao.Practice{
		Title:    practice.Title,
		Date:     practice.Date,
		Location: practice.Location,
		TeamID:   practice.TeamID,
	}, userIDs)
	if err != nil {
		return domain.Practice{}, fmt.Errorf("r.dao.InsertWithAttendances -> %w", err)
	}

	return practiceDAOToDomain(created), nil
}

func (r *PracticeRepository) FindByID(ctx context.Context, id uint) (domain.Practice, error) {
	practice, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Practice{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return practiceDAOToDomain(practice), nil
}

func (r *PracticeRepository) FindAll(ctx context.Context) ([]domain.Practice, error) {
	practices, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Practice, len(practices))
	for i, p := range practices {
		result[i] = practiceDAOToDomain(p)
	}

	return result, nil
}

func (r *PracticeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *PracticeRepository) FindAttendances(ctx context.Context, practiceID uint) ([]domain.Attendance, error) {
	attendances, err := r.dao.FindAttendances(ctx, practiceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendances -> %w", err)
	}

	return attendancesDAOToDomain(attendances), nil
}

func (r *PracticeRepository) FindAttendanceByID(ctx context.Context, id uint) (domain.Attendance, error) {
	attendance, err := r.dao.FindAttendanceByID(ctx, id)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.FindAttendanceByID -> %w", err)
	}

	return attendanceDAOToDomain(attendance), nil
}

func (r *PracticeRepository) FindAttendance(ctx context.Context, practiceID, userID uint) (domain.Attendance, error) {
	attendance, err := r.dao.FindAttendance(ctx, practiceID, userID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.FindAttendance -> %w", err)
	}

	return attendanceDAOToDomain(attendance), nil
}

func (r *PracticeRepository) UpdateAttendance(ctx context.Context, id uint, status domain.AttendanceStatus, reason, notes string) (domain.Attendance, error) {
	attendance, err := r.dao.UpdateAttendance(ctx, id, string(status), reason, notes)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.UpdateAttendance -> %w", err)
	}

	return attendanceDAOToDomain(attendance), nil
}

func (r *PracticeRepository) CreateAttendance(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	created, err := r.dao.InsertAttendance(ctx, dao.Attendance{
		PracticeID: attendance.PracticeID,
		UserID:     attendance.UserID,
		Status:     string(attendance.Status),
		Reason:     attendance.Reason,
		Notes:      attendance.Notes,
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.InsertAttendance -> %w", err)
	}

	return attendanceDAOToDomain(created), nil
}

func (r *PracticeRepository) FindUnansweredByUser(ctx context.Context, userID uint) ([]domain.Attendance, error) {
	attendances, err := r.dao.FindUnansweredByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUnansweredByUser -> %w", err)
	}

	return attendancesDAOToDomain(attendances), nil
}
