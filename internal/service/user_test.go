package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, u := range f.users {
		result = append(result, u)
	}

	return result, nil
}

func (f *fakeUserRepo) DistinctGenerations(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, u := range f.users {
		if u.Generation != "" && !seen[u.Generation] {
			seen[u.Generation] = true
			result = append(result, u.Generation)
		}
	}

	return result, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Role = role
	f.users[id] = user

	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)

	return nil
}

func TestPromoteDemoteGuards(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
		2: {ID: 2, Role: domain.RoleMember},
	}}
	svc := NewUserService(repo)

	admin := repo.users[1]
	member := repo.users[2]

	// A member cannot change roles at all.
	require.ErrorIs(t, svc.Promote(context.Background(), member, 1), ErrPermissionDenied)

	// An admin cannot touch their own role.
	require.ErrorIs(t, svc.Demote(context.Background(), admin, 1), ErrCannotModifySelf)

	require.NoError(t, svc.Promote(context.Background(), admin, 2))
	require.Equal(t, domain.RoleAdmin, repo.users[2].Role)

	require.NoError(t, svc.Demote(context.Background(), admin, 2))
	require.Equal(t, domain.RoleMember, repo.users[2].Role)
}

func TestDeleteGuards(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
		2: {ID: 2, Role: domain.RoleMember},
	}}
	svc := NewUserService(repo)

	admin := repo.users[1]

	require.ErrorIs(t, svc.Delete(context.Background(), admin, 1), ErrCannotModifySelf)
	require.NoError(t, svc.Delete(context.Background(), admin, 2))
	require.NotContains(t, repo.users, uint(2))
}

func TestUpdateProfileKeepsPasswordWhenEmpty(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{users: map[uint]domain.User{
		2: {ID: 2, Username: "kei", Password: "$2a$10$existinghash", Generation: "2023"},
	}}
	svc := NewUserService(repo)

	updated, err := svc.UpdateProfile(context.Background(), 2, "kei-r", "", "2024", nil)
	require.NoError(t, err)
	require.Equal(t, "kei-r", updated.Username)
	require.Equal(t, "2024", updated.Generation)
	require.Equal(t, "$2a$10$existinghash", updated.Password)

	// A new password is stored hashed.
	updated, err = svc.UpdateProfile(context.Background(), 2, "", "newpassw0rd", "", nil)
	require.NoError(t, err)
	require.NotEqual(t, "newpassw0rd", updated.Password)
	require.NotEqual(t, "$2a$10$existinghash", updated.Password)
}
