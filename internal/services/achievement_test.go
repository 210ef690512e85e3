package services

import (
	"context"
	"testing"

	"gamify/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAchievementsAwardsOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 150, 150)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	err = service.CreateAchievement(ctx, &models.Achievement{
		Name:        "Point Collector",
		Description: "Earn 100 lifetime points",
		Criteria:    &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 100},
	})
	require.NoError(t, err)

	awarded, err := service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "Point Collector", awarded[0].Name)
	require.Len(t, env.sentOn(CHANNEL_ACHIEVEMENTS), 1)

	// a replay of the same event must not double-award
	awarded, err = service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)
	assert.Empty(t, awarded)
	assert.Len(t, env.sentOn(CHANNEL_ACHIEVEMENTS), 1)
}

func TestProcessAchievementsTaskCompletionGated(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 10, 10)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	err = service.CreateAchievement(ctx, &models.Achievement{
		Name:     "First Steps",
		Criteria: &models.Criteria{Type: models.CriteriaTaskCompletionCount, TaskCount: 1},
	})
	require.NoError(t, err)

	err = env.store.TaskEvents().Insert(ctx, &models.TaskEvent{
		EventID: "evt-1",
		UserID:  "alice",
		TaskID:  "task-1",
		Status:  models.TaskCompleted,
	})
	require.NoError(t, err)

	// count is satisfied but the event is not a task completion
	awarded, err := service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	awarded, err = service.ProcessAchievements(ctx, "alice", EVENT_TASK_COMPLETED)
	require.NoError(t, err)
	assert.Len(t, awarded, 1)
}

func TestProcessAchievementsLevelReachedGated(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 500, 500)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	err = service.CreateAchievement(ctx, &models.Achievement{
		Name:     "Climber",
		Criteria: &models.Criteria{Type: models.CriteriaLevelReached, RequiredLevel: 3},
	})
	require.NoError(t, err)

	err = env.store.LadderStatuses().Upsert(ctx, &models.UserLadderStatus{
		UserID:      "alice",
		LevelNumber: 3,
	})
	require.NoError(t, err)

	awarded, err := service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	awarded, err = service.ProcessAchievements(ctx, "alice", EVENT_LEVEL_UP)
	require.NoError(t, err)
	assert.Len(t, awarded, 1)
}

func TestProcessAchievementsEventMatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	err = service.CreateAchievement(ctx, &models.Achievement{
		Name:     "Big Spender",
		Criteria: &models.Criteria{Type: models.CriteriaEventMatch, EventType: EVENT_REWARD_REDEMPTION},
	})
	require.NoError(t, err)

	awarded, err := service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	awarded, err = service.ProcessAchievements(ctx, "alice", EVENT_REWARD_REDEMPTION)
	require.NoError(t, err)
	assert.Len(t, awarded, 1)
}

func TestCreateAchievementRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	criteria := &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 10}
	require.NoError(t, service.CreateAchievement(ctx, &models.Achievement{Name: "Starter", Criteria: criteria}))

	err = service.CreateAchievement(ctx, &models.Achievement{Name: "Starter", Criteria: criteria})
	assert.ErrorIs(t, err, ErrAchievementNameTaken)
}

func TestCreateAchievementValidatesCriteria(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	err = service.CreateAchievement(ctx, &models.Achievement{Name: "No Criteria"})
	assert.Error(t, err)

	err = service.CreateAchievement(ctx, &models.Achievement{
		Name:     "Bad Criteria",
		Criteria: &models.Criteria{Type: "FULL_MOON"},
	})
	assert.ErrorIs(t, err, models.ErrUnknownCriteriaType)
}

func TestDeleteAchievementBlockedWhileHeld(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	a := &models.Achievement{
		Name:     "Point Collector",
		Criteria: &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 50},
	}
	require.NoError(t, service.CreateAchievement(ctx, a))

	awarded, err := service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)
	require.Len(t, awarded, 1)

	err = service.DeleteAchievement(ctx, a.AchievementID)
	assert.ErrorIs(t, err, ErrAchievementInUse)

	unheld := &models.Achievement{
		Name:     "Unreachable",
		Criteria: &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 1000000},
	}
	require.NoError(t, service.CreateAchievement(ctx, unheld))
	assert.NoError(t, service.DeleteAchievement(ctx, unheld.AchievementID))
}

func TestGetUserAchievements(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 100, 100)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceAchievement](env.container)
	require.NoError(t, err)

	require.NoError(t, service.CreateAchievement(ctx, &models.Achievement{
		Name:     "Point Collector",
		Criteria: &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 50},
	}))

	_, err = service.ProcessAchievements(ctx, "alice", EVENT_POINTS_EARNED)
	require.NoError(t, err)

	held, err := service.GetUserAchievements(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "alice", held[0].UserID)
}
