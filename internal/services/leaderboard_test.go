package services

import (
	"context"
	"testing"

	"gamify/internal/interfaces"
	"gamify/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntryIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 70, 70)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	first, err := service.CreateEntry(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Rank)
	assert.Equal(t, int64(70), first.EarnedPoints)

	second, err := service.CreateEntry(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)

	count, err := env.store.Leaderboard().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateEntryUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	_, err = service.CreateEntry(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCalculateRanksSharesTiedRanks(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	env.seedUser(t, "bob", 100, 100)
	env.seedUser(t, "carol", 50, 50)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SyncEntry(ctx, "alice", 100, 0))
	require.NoError(t, service.SyncEntry(ctx, "bob", 100, 0))
	require.NoError(t, service.SyncEntry(ctx, "carol", 50, 0))

	updated, err := service.CalculateRanks(ctx)
	require.NoError(t, err)
	// alice and carol already carry their provisional ranks 1 and 3
	assert.Equal(t, 1, updated)

	for user, want := range map[string]int64{"alice": 1, "bob": 1, "carol": 3} {
		entry, err := env.store.Leaderboard().Find(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, want, entry.Rank, user)
	}
}

func TestCalculateRanksSecondPassWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	env.seedUser(t, "bob", 80, 80)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SyncEntry(ctx, "alice", 100, 0))
	require.NoError(t, service.SyncEntry(ctx, "bob", 80, 0))

	_, err = service.CalculateRanks(ctx)
	require.NoError(t, err)

	updated, err := service.CalculateRanks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestCalculateRanksSkipsWhileRefreshHeld(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	locker, err := do.Invoke[interfaces.Locker](env.container)
	require.NoError(t, err)

	mutex := locker.NewMutex(LockKeyRankRefresh())
	require.NoError(t, mutex.TryLock())

	_, err = service.CalculateRanks(ctx)
	assert.ErrorIs(t, err, ErrRankRefreshLock)

	_, err = mutex.Unlock()
	require.NoError(t, err)

	_, err = service.CalculateRanks(ctx)
	assert.NoError(t, err)
}

func TestGetPage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	env.seedUser(t, "bob", 80, 80)
	env.seedUser(t, "carol", 60, 60)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SyncEntry(ctx, "alice", 100, 0))
	require.NoError(t, service.SyncEntry(ctx, "bob", 80, 0))
	require.NoError(t, service.SyncEntry(ctx, "carol", 60, 0))
	_, err = service.CalculateRanks(ctx)
	require.NoError(t, err)

	page, err := service.GetPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "alice", page.Entries[0].UserID)
	assert.Equal(t, int64(1), page.Entries[0].Rank)

	page, err = service.GetPage(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "carol", page.Entries[0].UserID)
}

func TestGetUserEntryUnknown(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	_, err = service.GetUserEntry(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetTopWithoutRedisFallsBackToStore(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	env.seedUser(t, "bob", 80, 80)
	env.seedUser(t, "carol", 60, 60)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SyncEntry(ctx, "alice", 100, 0))
	require.NoError(t, service.SyncEntry(ctx, "bob", 80, 0))
	require.NoError(t, service.SyncEntry(ctx, "carol", 60, 0))
	_, err = service.CalculateRanks(ctx)
	require.NoError(t, err)

	items, err := service.GetTop(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alice", items[0].UserID)
	assert.Equal(t, int64(100), items[0].Points)
	assert.Equal(t, int64(1), items[0].Rank)
	assert.Equal(t, "bob", items[1].UserID)
}

func TestGetDepartmentPageFiltersByDepartment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, u := range []models.User{
		{ID: "alice", Username: "alice", Department: "engineering", EarnedPoints: 100, AvailablePoints: 100},
		{ID: "bob", Username: "bob", Department: "sales", EarnedPoints: 80, AvailablePoints: 80},
		{ID: "carol", Username: "carol", Department: "engineering", EarnedPoints: 60, AvailablePoints: 60},
	} {
		u := u
		require.NoError(t, env.store.Users().Insert(ctx, &u))
	}

	service, err := do.Invoke[*ServiceLeaderboard](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SyncEntry(ctx, "alice", 100, 0))
	require.NoError(t, service.SyncEntry(ctx, "bob", 80, 0))
	require.NoError(t, service.SyncEntry(ctx, "carol", 60, 0))
	_, err = service.CalculateRanks(ctx)
	require.NoError(t, err)

	page, err := service.GetDepartmentPage(ctx, "engineering", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "alice", page.Entries[0].UserID)
	assert.Equal(t, "carol", page.Entries[1].UserID)

	page, err = service.GetDepartmentPage(ctx, "marketing", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Entries)
}
