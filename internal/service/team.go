package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var (
	ErrTeamNameExists = repository.ErrTeamNameExists
	ErrTeamNotFound   = repository.ErrTeamNotFound
	// ErrTeamNotEmpty guards against deleting a team that still has members.
	ErrTeamNotEmpty = errors.New("team still has members")
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindAll(ctx context.Context) ([]domain.Team, error)
	CountMembers(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{
		repo: repo,
	}
}

func (s *TeamService) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	if team.Name == "" {
		return domain.Team{}, ErrValidation
	}

	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TeamService) Get(ctx context.Context, id uint) (domain.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return team, nil
}

func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) Delete(ctx context.Context, id uint) error {
	members, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.CountMembers -> %w", err)
	}
	if members > 0 {
		return ErrTeamNotEmpty
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
