package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/takumi-oki/boardops-api/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	DistinctGenerations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) Get(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// Generations lists the distinct generation labels in use, for the practice
// creation form's target picker.
func (s *UserService) Generations(ctx context.Context) ([]string, error) {
	generations, err := s.repo.DistinctGenerations(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.DistinctGenerations -> %w", err)
	}

	return generations, nil
}

// UpdateProfile rewrites the user's own editable fields. A non-empty password
// is re-hashed; an empty one keeps the current hash.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, username, password, generation string, teamID *uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if username != "" {
		user.Username = username
	}
	if generation != "" {
		user.Generation = generation
	}
	if teamID != nil {
		user.TeamID = teamID
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		user.Password = string(hash)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Promote grants admin. Admins cannot change their own role.
func (s *UserService) Promote(ctx context.Context, actor domain.User, userID uint) error {
	return s.setRole(ctx, actor, userID, domain.RoleAdmin)
}

func (s *UserService) Demote(ctx context.Context, actor domain.User, userID uint) error {
	return s.setRole(ctx, actor, userID, domain.RoleMember)
}

func (s *UserService) setRole(ctx context.Context, actor domain.User, userID uint, role string) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	if actor.ID == userID {
		return ErrCannotModifySelf
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	zap.L().Info("user role changed",
		zap.Uint("user_id", userID),
		zap.String("role", role),
		zap.Uint("by", actor.ID))

	return nil
}

// Delete removes the user and their dependent rows. Admins cannot delete
// themselves.
func (s *UserService) Delete(ctx context.Context, actor domain.User, userID uint) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	if actor.ID == userID {
		return ErrCannotModifySelf
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	zap.L().Info("user deleted",
		zap.Uint("user_id", userID),
		zap.Uint("by", actor.ID))

	return nil
}
