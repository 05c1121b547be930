package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var (
	ErrTransportNotFound = repository.ErrTransportNotFound
	ErrCarrierNotFound   = repository.ErrUserNotFound
)

type TransportRepository interface {
	Assign(ctx context.Context, practiceID, boardID, userID uint, direction domain.TransportDirection) (domain.Transport, domain.TransportOutcome, error)
	CreateIfAbsent(ctx context.Context, practiceID, boardID, userID uint, direction domain.TransportDirection) (domain.Transport, bool, error)
	Delete(ctx context.Context, id uint) (domain.Transport, error)
	FindByID(ctx context.Context, id uint) (domain.Transport, error)
	FindByPracticeAndDirection(ctx context.Context, practiceID uint, direction domain.TransportDirection) ([]domain.Transport, error)
}

type TransportUserDirectory interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type TransportAttendanceSource interface {
	FindByID(ctx context.Context, id uint) (domain.Practice, error)
	FindAttendances(ctx context.Context, practiceID uint) ([]domain.Attendance, error)
}

type TransportService struct {
	repo      TransportRepository
	users     TransportUserDirectory
	practices TransportAttendanceSource
	rnd       *rand.Rand
}

// NewTransportService wires the transport ledger and the return-carrier
// lottery. rnd may be nil, in which case a time-seeded source is used; tests
// inject a fixed seed.
func NewTransportService(repo TransportRepository, users TransportUserDirectory, practices TransportAttendanceSource, rnd *rand.Rand) *TransportService {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &TransportService{
		repo:      repo,
		users:     users,
		practices: practices,
		rnd:       rnd,
	}
}

// AssignTransport binds one carrier to each of the given boards for one
// direction. Items are applied one by one; an item that fails does not roll
// back the ones already applied, and each board gets its own outcome.
func (s *TransportService) AssignTransport(ctx context.Context, practiceID, carrierID uint, boardIDs []uint, direction domain.TransportDirection) ([]domain.TransportItemResult, error) {
	if carrierID == 0 || len(boardIDs) == 0 {
		return nil, ErrValidation
	}

	if _, err := s.practices.FindByID(ctx, practiceID); err != nil {
		return nil, fmt.Errorf("s.practices.FindByID -> %w", err)
	}

	carrier, err := s.users.FindByID(ctx, carrierID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrCarrierNotFound
		}

		return nil, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	results := make([]domain.TransportItemResult, 0, len(boardIDs))
	for _, boardID := range boardIDs {
		_, outcome, err := s.repo.Assign(ctx, practiceID, boardID, carrier.ID, direction)
		if err != nil {
			results = append(results, domain.TransportItemResult{
				BoardID: boardID,
				Outcome: domain.TransportFailed,
				Detail:  err.Error(),
			})

			continue
		}

		results = append(results, domain.TransportItemResult{BoardID: boardID, Outcome: outcome})
	}

	return results, nil
}

// UnassignTransport releases the duty and decrements the carrier's counter.
// Members release only their own duties; admins release anyone's.
func (s *TransportService) UnassignTransport(ctx context.Context, actor domain.User, transportID uint) (domain.Transport, error) {
	transport, err := s.repo.FindByID(ctx, transportID)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if transport.UserID != actor.ID && !actor.IsAdmin() {
		return domain.Transport{}, ErrPermissionDenied
	}

	deleted, err := s.repo.Delete(ctx, transport.ID)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return deleted, nil
}

// RunLottery draws return carriers for the given boards from the practice's
// attendees, weighted toward members who have carried least.
//
// Pool construction: attendees with no transport duty form the primary pool.
// Outbound carriers without a confirmed return duty are the backup pool, used
// only when the primary pool alone cannot cover the demand.
func (s *TransportService) RunLottery(ctx context.Context, practiceID uint, boardIDs []uint) (domain.LotteryResult, error) {
	if len(boardIDs) == 0 {
		return domain.LotteryResult{}, ErrValidation
	}
	demand := len(boardIDs)

	practice, err := s.practices.FindByID(ctx, practiceID)
	if err != nil {
		return domain.LotteryResult{}, fmt.Errorf("s.practices.FindByID -> %w", err)
	}

	attendances, err := s.practices.FindAttendances(ctx, practice.ID)
	if err != nil {
		return domain.LotteryResult{}, fmt.Errorf("s.practices.FindAttendances -> %w", err)
	}

	transportsTo, err := s.repo.FindByPracticeAndDirection(ctx, practice.ID, domain.DirectionTo)
	if err != nil {
		return domain.LotteryResult{}, fmt.Errorf("s.repo.FindByPracticeAndDirection -> %w", err)
	}
	transportsFrom, err := s.repo.FindByPracticeAndDirection(ctx, practice.ID, domain.DirectionFrom)
	if err != nil {
		return domain.LotteryResult{}, fmt.Errorf("s.repo.FindByPracticeAndDirection -> %w", err)
	}

	outbound := make(map[uint]bool, len(transportsTo))
	for _, t := range transportsTo {
		outbound[t.UserID] = true
	}
	confirmedReturn := make(map[uint]bool, len(transportsFrom))
	for _, t := range transportsFrom {
		confirmedReturn[t.UserID] = true
	}

	var primary, secondary []domain.User
	for _, a := range attendances {
		if a.Status != domain.StatusPresent {
			continue
		}
		if confirmedReturn[a.UserID] || outbound[a.UserID] {
			continue
		}
		primary = append(primary, a.User)
	}
	seen := make(map[uint]bool, len(transportsTo))
	for _, t := range transportsTo {
		if !confirmedReturn[t.UserID] && !seen[t.UserID] {
			secondary = append(secondary, t.User)
			seen[t.UserID] = true
		}
	}

	pool := primary
	if len(primary) < demand {
		pool = append(append([]domain.User{}, primary...), secondary...)
	}
	if len(pool) < demand {
		return domain.LotteryResult{}, &InsufficientCandidatesError{
			Needed:    demand,
			Available: len(pool),
		}
	}

	winners := s.drawWinners(pool, demand)

	result := domain.LotteryResult{Winners: winners}
	for i, winner := range winners {
		transport, created, err := s.repo.CreateIfAbsent(ctx, practice.ID, boardIDs[i], winner.ID, domain.DirectionFrom)
		if err != nil {
			return domain.LotteryResult{}, fmt.Errorf("s.repo.CreateIfAbsent -> %w", err)
		}
		if created {
			result.Transports = append(result.Transports, transport)
		}
	}

	zap.L().Info("return transport lottery finished",
		zap.Uint("practice_id", practice.ID),
		zap.Int("demand", demand),
		zap.Int("pool_size", len(pool)),
		zap.Int("assigned", len(result.Transports)))

	return result, nil
}

// drawWinners performs weighted sampling without replacement: one weighted
// draw over the remaining pool, remove the winner, redraw until demand is met
// or the pool runs out.
func (s *TransportService) drawWinners(pool []domain.User, demand int) []domain.User {
	candidates := make([]domain.User, len(pool))
	copy(candidates, pool)

	winners := make([]domain.User, 0, demand)
	for len(winners) < demand && len(candidates) > 0 {
		total := 0.0
		for _, c := range candidates {
			total += selectionWeight(c.TransportCount)
		}

		r := s.rnd.Float64() * total
		idx := len(candidates) - 1
		for i, c := range candidates {
			r -= selectionWeight(c.TransportCount)
			if r < 0 {
				idx = i
				break
			}
		}

		winners = append(winners, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}

	return winners
}

// selectionWeight is 1/(count+1)^2. Always positive, so even heavy carriers
// stay in the draw.
func selectionWeight(transportCount int) float64 {
	n := float64(transportCount + 1)
	return 1 / (n * n)
}
