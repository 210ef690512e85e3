package services

import (
	"context"
	"testing"

	"gamify/internal/datastore/memstore"
	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/notify"
	"gamify/internal/pkg/caching"
	"gamify/internal/pkg/locking"
	"gamify/internal/strategies"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	container *do.Injector
	store     *memstore.Store
	notifier  *notify.NotifierMemory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.New()
	notifier := notify.NewNotifierMemory()

	container := do.New()
	t.Cleanup(func() {
		//nolint:errcheck
		container.Shutdown()
	})

	do.ProvideValue[interfaces.UserRepository](container, store.Users())
	do.ProvideValue[interfaces.PointsTransactionRepository](container, store.Transactions())
	do.ProvideValue[interfaces.LadderLevelRepository](container, store.LadderLevels())
	do.ProvideValue[interfaces.LadderStatusRepository](container, store.LadderStatuses())
	do.ProvideValue[interfaces.LeaderboardRepository](container, store.Leaderboard())
	do.ProvideValue[interfaces.AchievementRepository](container, store.Achievements())
	do.ProvideValue[interfaces.UserAchievementRepository](container, store.UserAchievements())
	do.ProvideValue[interfaces.RewardRepository](container, store.Rewards())
	do.ProvideValue[interfaces.RedemptionRepository](container, store.Redemptions())
	do.ProvideValue[interfaces.TaskEventRepository](container, store.TaskEvents())
	do.ProvideValue[interfaces.ConfigRepository](container, store.Configs())
	do.ProvideValue[interfaces.Atomic](container, store)
	do.ProvideValue[interfaces.Locker](container, locking.NewLockerMemory())
	do.ProvideValue[interfaces.Notifier](container, notifier)
	do.ProvideValue[caching.Cache](container, caching.NewCacheMemory())
	do.ProvideValue[interfaces.TaskPointsStrategy](container, strategies.NewPriorityPoints())

	do.Provide(container, NewServiceConfig)
	do.Provide(container, NewServiceUser)
	do.Provide(container, NewServiceLadder)
	do.Provide(container, NewServiceLeaderboard)
	do.Provide(container, NewServiceAchievement)
	do.Provide(container, NewServicePoints)
	do.Provide(container, NewServiceReward)
	do.Provide(container, NewServiceRedemption)
	do.Provide(container, NewServiceTaskEvent)

	return &testEnv{container: container, store: store, notifier: notifier}
}

func (env *testEnv) seedUser(t *testing.T, id string, earned, available int64) {
	t.Helper()
	err := env.store.Users().Insert(context.Background(), &models.User{
		ID:              id,
		Username:        id,
		EarnedPoints:    earned,
		AvailablePoints: available,
	})
	require.NoError(t, err)
}

func (env *testEnv) seedLevels(t *testing.T, thresholds ...int64) {
	t.Helper()
	labels := []string{"Beginner", "Contributor", "Achiever", "Expert", "Legend"}
	for i, points := range thresholds {
		label := labels[i%len(labels)]
		err := env.store.LadderLevels().Insert(context.Background(), &models.LadderLevel{
			Level:          int64(i + 1),
			Label:          label,
			PointsRequired: points,
		})
		require.NoError(t, err)
	}
}

func (env *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()
	user, err := env.store.Users().Find(context.Background(), id)
	require.NoError(t, err)
	return user
}

func (env *testEnv) sentOn(channel string) []notify.SentNotification {
	var sent []notify.SentNotification
	for _, n := range env.notifier.Sent {
		if n.Channel == channel {
			sent = append(sent, n)
		}
	}
	return sent
}
