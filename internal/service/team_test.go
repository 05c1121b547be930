package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takumi-oki/boardops-api/internal/domain"
	"github.com/takumi-oki/boardops-api/internal/repository"
)

type fakeTeamRepo struct {
	teams   map[uint]domain.Team
	members map[uint]int64
	nextID  uint
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   make(map[uint]domain.Team),
		members: make(map[uint]int64),
		nextID:  1,
	}
}

func (f *fakeTeamRepo) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	for _, t := range f.teams {
		if t.Name == team.Name {
			return domain.Team{}, repository.ErrTeamNameExists
		}
	}

	team.ID = f.nextID
	f.nextID++
	f.teams[team.ID] = team

	return team, nil
}

func (f *fakeTeamRepo) FindByID(_ context.Context, id uint) (domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	return t, nil
}

func (f *fakeTeamRepo) FindAll(_ context.Context) ([]domain.Team, error) {
	var result []domain.Team
	for _, t := range f.teams {
		result = append(result, t)
	}

	return result, nil
}

func (f *fakeTeamRepo) CountMembers(_ context.Context, id uint) (int64, error) {
	return f.members[id], nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.teams[id]; !ok {
		return repository.ErrTeamNotFound
	}
	delete(f.teams, id)

	return nil
}

func TestTeamDeleteRefusedWhileMembersExist(t *testing.T) {
	t.Parallel()

	repo := newFakeTeamRepo()
	svc := NewTeamService(repo)

	team, err := svc.Create(context.Background(), domain.Team{Name: "sprint"})
	require.NoError(t, err)

	repo.members[team.ID] = 2
	require.ErrorIs(t, svc.Delete(context.Background(), team.ID), ErrTeamNotEmpty)

	repo.members[team.ID] = 0
	require.NoError(t, svc.Delete(context.Background(), team.ID))
	require.Empty(t, repo.teams)
}

func TestTeamCreateValidationAndDuplicate(t *testing.T) {
	t.Parallel()

	svc := NewTeamService(newFakeTeamRepo())

	_, err := svc.Create(context.Background(), domain.Team{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), domain.Team{Name: "sprint"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.Team{Name: "sprint"})
	require.ErrorIs(t, err, ErrTeamNameExists)
}
