package services

import (
	"context"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardPointsUpdatesBalancesAndLedger(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	result, err := service.AwardPoints(ctx, "alice", 100, EVENT_TASK_COMPLETED, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.NewEarnedTotal)

	user := env.user(t, "alice")
	assert.Equal(t, int64(100), user.EarnedPoints)
	assert.Equal(t, int64(100), user.AvailablePoints)

	txs, err := env.store.Transactions().FindByUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(100), txs[0].Points)
	assert.Equal(t, EVENT_TASK_COMPLETED, txs[0].EventType)
	assert.NotEmpty(t, txs[0].TransactionID)

	require.NotEmpty(t, env.sentOn(CHANNEL_POINTS))
}

func TestAwardPointsRejectsNonPositiveAmounts(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	_, err = service.AwardPoints(context.Background(), "alice", 0, EVENT_TASK_COMPLETED, nil)
	assert.ErrorIs(t, err, ErrInvalidPoints)

	_, err = service.AwardPoints(context.Background(), "alice", -10, EVENT_TASK_COMPLETED, nil)
	assert.ErrorIs(t, err, ErrInvalidPoints)
}

func TestAwardPointsUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	_, err = service.AwardPoints(context.Background(), "ghost", 50, EVENT_TASK_COMPLETED, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)

	txs, err := env.store.Transactions().FindByUser(context.Background(), "ghost", 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestAwardPointsCascadesLadderAndLeaderboard(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	env.seedLevels(t, 0, 100, 200)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	result, err := service.AwardPoints(ctx, "alice", 150, EVENT_TASK_COMPLETED, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	status, err := env.store.LadderStatuses().Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.LevelNumber)
	assert.Equal(t, int64(50), status.PointsToNextLevel)

	entry, err := env.store.Leaderboard().Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(150), entry.EarnedPoints)
	assert.Equal(t, int64(2), entry.LevelNumber)
}

func TestSpendPointsInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 30)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	ok, err := service.SpendPoints(ctx, "alice", 50, EVENT_REWARD_REDEMPTION, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	user := env.user(t, "alice")
	assert.Equal(t, int64(30), user.AvailablePoints)
	assert.Equal(t, int64(100), user.EarnedPoints)

	txs, err := env.store.Transactions().FindByUser(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSpendPointsDebitsAvailableOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	ok, err := service.SpendPoints(ctx, "alice", 40, EVENT_REWARD_REDEMPTION, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	user := env.user(t, "alice")
	assert.Equal(t, int64(100), user.EarnedPoints)
	assert.Equal(t, int64(60), user.AvailablePoints)

	txs, err := env.store.Transactions().FindByUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(-40), txs[0].Points)
}

func TestRefundPointsCreditsAvailableOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 40)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	err = service.RefundPoints(ctx, "alice", 25, EVENT_REDEMPTION_REFUND, nil)
	require.NoError(t, err)

	user := env.user(t, "alice")
	assert.Equal(t, int64(100), user.EarnedPoints)
	assert.Equal(t, int64(65), user.AvailablePoints)

	txs, err := env.store.Transactions().FindByUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(25), txs[0].Points)
}

func TestLedgerBalanceMatchesNetMovement(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	_, err = service.AwardPoints(ctx, "alice", 100, EVENT_TASK_COMPLETED, nil)
	require.NoError(t, err)

	ok, err := service.SpendPoints(ctx, "alice", 40, EVENT_REWARD_REDEMPTION, nil)
	require.NoError(t, err)
	require.True(t, ok)

	err = service.RefundPoints(ctx, "alice", 10, EVENT_REDEMPTION_REFUND, nil)
	require.NoError(t, err)

	balance, err := service.LedgerBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(70), balance)

	available, err := service.GetAvailablePoints(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, available, balance)

	earned, err := service.GetEarnedPoints(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), earned)
}

func TestGetTransactionsByTypeFilters(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServicePoints](env.container)
	require.NoError(t, err)

	_, err = service.AwardPoints(ctx, "alice", 30, EVENT_TASK_COMPLETED, nil)
	require.NoError(t, err)
	_, err = service.AwardPoints(ctx, "alice", 20, EVENT_POINTS_EARNED, nil)
	require.NoError(t, err)

	txs, err := service.GetTransactionsByType(ctx, "alice", EVENT_TASK_COMPLETED)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(30), txs[0].Points)
}
