package service

import (
	"context"
	"testing"

	"accesshub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Role: models.RoleEmployee}, nil
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	t.Parallel()

	t.Run("invalid role label", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateRole(context.Background(), 1, "Superuser")
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(repo)
		_, err := svc.UpdateRole(context.Background(), 99, "Manager")
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("promotes to manager", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo)
		user, err := svc.UpdateRole(context.Background(), 1, "Manager")
		require.NoError(t, err)
		assert.Equal(t, models.RoleManager, user.Role)
		require.NotNil(t, saved)
		assert.Equal(t, models.RoleManager, saved.Role)
	})
}

func TestUserService_ListUsers_LimitClamping(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	var gotLimit int
	repo.listFn = func(_ context.Context, limit, _ int) ([]models.User, error) {
		gotLimit = limit
		return nil, nil
	}
	svc := NewUserService(repo)

	_, err := svc.ListUsers(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)

	_, err = svc.ListUsers(context.Background(), 500, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
}
