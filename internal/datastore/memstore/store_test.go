package memstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"gamify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTxRollsBackOnError(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "alice", AvailablePoints: 100}))

	boom := errors.New("insufficient")
	err := store.RunInTx(ctx, func(ctx context.Context) error {
		user, err := store.Users().Find(ctx, "alice")
		if err != nil {
			return err
		}
		user.AvailablePoints = 0
		if err := store.Users().Update(ctx, user); err != nil {
			return err
		}
		if err := store.Transactions().Insert(ctx, &models.PointsTransaction{TransactionID: "tx-1", UserID: "alice", Points: -100}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	user, err := store.Users().Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.AvailablePoints)

	sum, err := store.Transactions().SumByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestRunInTxNestedJoinsOuter(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "alice", AvailablePoints: 100}))

	boom := errors.New("outer failed")
	err := store.RunInTx(ctx, func(ctx context.Context) error {
		inner := store.RunInTx(ctx, func(ctx context.Context) error {
			user, err := store.Users().Find(ctx, "alice")
			if err != nil {
				return err
			}
			user.AvailablePoints = 5
			return store.Users().Update(ctx, user)
		})
		if inner != nil {
			return inner
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// the inner write joined the outer transaction, so it rolled back too
	user, err := store.Users().Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.AvailablePoints)
}

func TestRunInTxCommits(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "alice", AvailablePoints: 100}))

	err := store.RunInTx(ctx, func(ctx context.Context) error {
		user, err := store.Users().Find(ctx, "alice")
		if err != nil {
			return err
		}
		user.AvailablePoints -= 40
		return store.Users().Update(ctx, user)
	})
	require.NoError(t, err)

	user, err := store.Users().Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(60), user.AvailablePoints)
}

func TestMissingRowsSurfaceAsNoRows(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.Users().Find(ctx, "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.Rewards().Find(ctx, "unicorn")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.Redemptions().Find(ctx, "r-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.Configs().Get(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLeaderboardFindAllOrdersByPointsThenUser(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, entry := range []models.LeaderboardEntry{
		{UserID: "carol", EarnedPoints: 50},
		{UserID: "bob", EarnedPoints: 100},
		{UserID: "alice", EarnedPoints: 100},
	} {
		entry := entry
		require.NoError(t, store.Leaderboard().Insert(ctx, &entry))
	}

	entries, err := store.Leaderboard().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, "bob", entries[1].UserID)
	assert.Equal(t, "carol", entries[2].UserID)
}

func TestDuplicateInsertFails(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Users().Insert(ctx, &models.User{ID: "alice"}))
	assert.Error(t, store.Users().Insert(ctx, &models.User{ID: "alice"}))

	ua := &models.UserAchievement{UserID: "alice", AchievementID: "a-1"}
	require.NoError(t, store.UserAchievements().Insert(ctx, ua))
	assert.Error(t, store.UserAchievements().Insert(ctx, ua))
}
