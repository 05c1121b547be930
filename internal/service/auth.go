package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrWrongPassword  = errors.New("wrong password")
)

const guestUsername = "guest"

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup registers the user with a bcrypt-hashed password. The very first
// account becomes an admin so a fresh deployment is never locked out.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	count, err := s.repo.Count(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Count -> %w", err)
	}

	if count == 0 {
		user.Role = domain.RoleAdmin
	} else if user.Role == "" {
		user.Role = domain.RoleMember
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("user signed up",
		zap.Uint("user_id", created.ID),
		zap.String("role", created.Role))

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// GuestLogin returns the shared read-only guest account, creating it on first
// use with a throwaway random password so it cannot be logged into directly.
func (s *AuthService) GuestLogin(ctx context.Context) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, guestUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	password, err := randomPassword()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username: guestUsername,
		Password: string(hash),
		Role:     domain.RoleGuest,
	})
	if err != nil {
		// Another request may have created the guest concurrently.
		if errors.Is(err, repository.ErrUsernameExists) {
			return s.repo.FindByUsername(ctx, guestUsername)
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
