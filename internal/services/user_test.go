package services

import (
	"context"
	"testing"

	"gamify/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserAssignsID(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceUser](env.container)
	require.NoError(t, err)

	user, err := service.RegisterUser(context.Background(), &models.User{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	found, err := service.FindUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceUser](env.container)
	require.NoError(t, err)

	_, err = service.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = service.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice2@example.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = service.RegisterUser(ctx, &models.User{Username: "alice-2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUserCreatesLeaderboardEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceUser](env.container)
	require.NoError(t, err)

	user, err := service.RegisterUser(ctx, &models.User{Username: "alice"})
	require.NoError(t, err)

	serviceLeaderboard, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	entry, err := serviceLeaderboard.GetUserEntry(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", entry.Username)
	assert.Equal(t, int64(1), entry.Rank)
}

func TestRegisterUserValidation(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceUser](env.container)
	require.NoError(t, err)

	_, err = service.RegisterUser(context.Background(), &models.User{Username: "  "})
	assert.Error(t, err)

	_, err = service.RegisterUser(context.Background(), &models.User{Username: "bob", Email: "not-an-email"})
	assert.Error(t, err)
}

func TestFindUserByIDUnknown(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceUser](env.container)
	require.NoError(t, err)

	_, err = service.FindUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserInvalidatesCache(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceUser](env.container)
	require.NoError(t, err)

	// prime the cache
	user, err := service.FindUserByID(ctx, "alice")
	require.NoError(t, err)

	user.Department = "engineering"
	_, err = service.UpdateUser(ctx, user)
	require.NoError(t, err)

	fresh, err := service.FindUserByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "engineering", fresh.Department)
}
