package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var (
	ErrPracticeNotFound = repository.ErrPracticeNotFound
	// ErrNoTargetUsers is returned when a new practice's team/generation
	// filter matches nobody; the practice is not created.
	ErrNoTargetUsers = errors.New("no users match the practice target")
)

type PracticeRepository interface {
	CreateWithAttendances(ctx context.Context, practice domain.Practice, userIDs []uint) (domain.Practice, error)
	FindByID(ctx context.Context, id uint) (domain.Practice, error)
	FindAll(ctx context.Context) ([]domain.Practice, error)
	Delete(ctx context.Context, id uint) error
	FindAttendances(ctx context.Context, practiceID uint) ([]domain.Attendance, error)
	FindAttendance(ctx context.Context, practiceID, userID uint) (domain.Attendance, error)
}

type PracticeUserDirectory interface {
	FindByTeamAndGenerations(ctx context.Context, teamID uint, generations []string) ([]domain.User, error)
}

type PracticeBoardDirectory interface {
	CountByLocation(ctx context.Context, location string) (int, error)
	FindAtPractice(ctx context.Context, location string, inboundBoardIDs []uint) ([]domain.Board, error)
}

type PracticeSessionDirectory interface {
	FindByPractice(ctx context.Context, practiceID uint) ([]domain.Session, error)
}

type PracticeTransportDirectory interface {
	FindByPracticeAndDirection(ctx context.Context, practiceID uint, direction domain.TransportDirection) ([]domain.Transport, error)
}

type PracticeService struct {
	repo       PracticeRepository
	users      PracticeUserDirectory
	boards     PracticeBoardDirectory
	sessions   PracticeSessionDirectory
	transports PracticeTransportDirectory
}

func NewPracticeService(
	repo PracticeRepository,
	users PracticeUserDirectory,
	boards PracticeBoardDirectory,
	sessions PracticeSessionDirectory,
	transports PracticeTransportDirectory,
) *PracticeService {
	return &PracticeService{
		repo:       repo,
		users:      users,
		boards:     boards,
		sessions:   sessions,
		transports: transports,
	}
}

// Create stores the practice and fans out one unanswered attendance per user
// in the target team/generations.
func (s *PracticeService) Create(ctx context.Context, practice domain.Practice, targetGenerations []string) (domain.Practice, int, error) {
	if practice.Title == "" || practice.Location == "" || practice.TeamID == 0 || len(targetGenerations) == 0 {
		return domain.Practice{}, 0, ErrValidation
	}

	targets, err := s.users.FindByTeamAndGenerations(ctx, practice.TeamID, targetGenerations)
	if err != nil {
		return domain.Practice{}, 0, fmt.Errorf("s.users.FindByTeamAndGenerations -> %w", err)
	}
	if len(targets) == 0 {
		return domain.Practice{}, 0, ErrNoTargetUsers
	}

	userIDs := make([]uint, len(targets))
	for i, u := range targets {
		userIDs[i] = u.ID
	}

	created, err := s.repo.CreateWithAttendances(ctx, practice, userIDs)
	if err != nil {
		return domain.Practice{}, 0, fmt.Errorf("s.repo.CreateWithAttendances -> %w", err)
	}

	zap.L().Info("practice created",
		zap.Uint("practice_id", created.ID),
		zap.Int("targets", len(targets)))

	return created, len(targets), nil
}

func (s *PracticeService) List(ctx context.Context) ([]domain.Practice, error) {
	practices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return practices, nil
}

func (s *PracticeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Detail recomputes every derived view of a practice: attendee subsets, the
// unassigned remainder, session sizes and the transport capacity gap.
func (s *PracticeService) Detail(ctx context.Context, practiceID, viewerID uint) (domain.PracticeDetail, error) {
	practice, err := s.repo.FindByID(ctx, practiceID)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	attendances, err := s.repo.FindAttendances(ctx, practice.ID)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.repo.FindAttendances -> %w", err)
	}

	sessions, err := s.sessions.FindByPractice(ctx, practice.ID)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.sessions.FindByPractice -> %w", err)
	}

	transportsTo, err := s.transports.FindByPracticeAndDirection(ctx, practice.ID, domain.DirectionTo)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.transports.FindByPracticeAndDirection -> %w", err)
	}
	transportsFrom, err := s.transports.FindByPracticeAndDirection(ctx, practice.ID, domain.DirectionFrom)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.transports.FindByPracticeAndDirection -> %w", err)
	}

	boardsAtLocation, err := s.boards.CountByLocation(ctx, practice.Location)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.boards.CountByLocation -> %w", err)
	}

	inboundBoardIDs := make([]uint, len(transportsTo))
	for i, t := range transportsTo {
		inboundBoardIDs[i] = t.BoardID
	}
	boardsAtPractice, err := s.boards.FindAtPractice(ctx, practice.Location, inboundBoardIDs)
	if err != nil {
		return domain.PracticeDetail{}, fmt.Errorf("s.boards.FindAtPractice -> %w", err)
	}

	detail := domain.PracticeDetail{
		Practice:                practice,
		Attendances:             attendances,
		Sessions:                sessions,
		MaxSessionSize:          MaxSessionSize(sessions),
		BoardsAtLocation:        boardsAtLocation,
		TransportsTo:            transportsTo,
		TransportsFrom:          transportsFrom,
		BoardsAtPractice:        boardsAtPractice,
		PresentAttendees:        []domain.User{},
		AssignableAttendees:     []domain.User{},
		UnassignedAttendees:     []domain.User{},
	}
	// The capacity gap counts boards already on site plus boards an inbound
	// transport will bring, so confirming an outbound carrier lowers it.
	detail.RequiredTransportBoards = RequiredTransportBoards(detail.MaxSessionSize, len(boardsAtPractice))

	for i := range attendances {
		a := attendances[i]
		if a.UserID == viewerID {
			detail.ViewerAttendance = &attendances[i]
		}
		if a.Status == domain.StatusPresent {
			detail.PresentAttendees = append(detail.PresentAttendees, a.User)
		}
		if a.Status.Assignable() {
			detail.AssignableAttendees = append(detail.AssignableAttendees, a.User)
		}
	}
	detail.UnassignedAttendees = UnassignedAttendees(detail.AssignableAttendees, sessions)

	return detail, nil
}

// RequiredTransportBoards is the number of additional boards that must be
// carried in: max(0, largest session size - boards available at the practice).
func RequiredTransportBoards(maxSessionSize, boardsAtLocation int) int {
	required := maxSessionSize - boardsAtLocation
	if required < 0 {
		return 0
	}

	return required
}

func MaxSessionSize(sessions []domain.Session) int {
	size := 0
	for _, s := range sessions {
		if len(s.Members) > size {
			size = len(s.Members)
		}
	}

	return size
}

// UnassignedAttendees is the set difference of the assignable attendees and
// the union of all session members, keeping the attendees' display order.
func UnassignedAttendees(assignable []domain.User, sessions []domain.Session) []domain.User {
	assigned := make(map[uint]bool)
	for _, s := range sessions {
		for _, m := range s.Members {
			assigned[m.ID] = true
		}
	}

	unassigned := make([]domain.User, 0, len(assignable))
	for _, u := range assignable {
		if !assigned[u.ID] {
			unassigned = append(unassigned, u)
		}
	}

	return unassigned
}
