package repository

import (
	"context"
	"fmt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
)

var (
	ErrUsernameExists = dao.ErrUsernameExists
	ErrUserNotFound   = dao.ErrUserNotFound
	ErrTeamNameExists = dao.ErrTeamNameExists
	ErrTeamNotFound   = dao.ErrTeamNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	FindByTeamAndGenerations(ctx context.Context, teamID uint, generations []string) ([]dao.User, error)
	DistinctGenerations(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func userDomainToDAO(u domain.User) dao.User {
	return dao.User{
		ID:             u.ID,
		Username:       u.Username,
		Password:       u.Password,
		Role:           u.Role,
		Generation:     u.Generation,
		TeamID:         u.TeamID,
		TransportCount: u.TransportCount,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func userDAOToDomain(u dao.User) domain.User {
	return domain.User{
		ID:             u.ID,
		Username:       u.Username,
		Password:       u.Password,
		Role:           u.Role,
		Generation:     u.Generation,
		TeamID:         u.TeamID,
		TransportCount: u.TransportCount,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func usersDAOToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = userDAOToDomain(u)
	}

	return result
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, userDomainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDAOToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDAOToDomain(user), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return userDAOToDomain(user), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role string) ([]domain.User, error) {
	users, err := r.dao.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return usersDAOToDomain(users), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return usersDAOToDomain(users), nil
}

func (r *UserRepository) FindByTeamAndGenerations(ctx context.Context, teamID uint, generations []string) ([]domain.User, error) {
	users, err := r.dao.FindByTeamAndGenerations(ctx, teamID, generations)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTeamAndGenerations -> %w", err)
	}

	return usersDAOToDomain(users), nil
}

func (r *UserRepository) DistinctGenerations(ctx context.Context) ([]string, error) {
	generations, err := r.dao.DistinctGenerations(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.DistinctGenerations -> %w", err)
	}

	return generations, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, userDomainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return userDAOToDomain(updated), nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	if err := r.dao.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	FindAll(ctx context.Context) ([]dao.Team, error)
	CountMembers(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func teamDAOToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{Name: team.Name})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return teamDAOToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (domain.Team, error) {
	team, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return teamDAOToDomain(team), nil
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]domain.Team, error) {
	teams, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Team, len(teams))
	for i, t := range teams {
		result[i] = teamDAOToDomain(t)
	}

	return result, nil
}

func (r *TeamRepository) CountMembers(ctx context.Context, id uint) (int64, error) {
	count, err := r.dao.CountMembers(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountMembers -> %w", err)
	}

	return count, nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
