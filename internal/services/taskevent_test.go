package services

import (
	"context"
	"testing"

	"gamify/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEventAssignedAwardsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceTaskEvent](env.container)
	require.NoError(t, err)

	result, err := service.RecordEvent(ctx, &models.TaskEvent{
		EventID:   "evt-1",
		UserID:    "alice",
		TaskID:    "task-1",
		EventType: EVENT_TASK_ASSIGNED,
		Status:    models.TaskAssigned,
		Priority:  models.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.PointsAwarded)

	user := env.user(t, "alice")
	assert.Equal(t, int64(0), user.EarnedPoints)

	_, err = env.store.TaskEvents().Find(ctx, "evt-1")
	require.NoError(t, err)
	require.NotEmpty(t, env.sentOn(CHANNEL_TASK_EVENTS))
}

func TestRecordEventCompletedAwardsByPriority(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceTaskEvent](env.container)
	require.NoError(t, err)

	cases := []struct {
		priority models.TaskPriority
		points   int64
	}{
		{models.PriorityLow, 10},
		{models.PriorityMedium, 20},
		{models.PriorityHigh, 30},
		{models.PriorityCritical, 50},
		{"", 15},
	}
	var total int64
	env.seedUser(t, "alice", 0, 0)
	for i, tc := range cases {
		result, err := service.RecordEvent(ctx, &models.TaskEvent{
			EventID:   string(rune('a' + i)),
			UserID:    "alice",
			TaskID:    "task-1",
			EventType: EVENT_TASK_COMPLETED,
			Status:    models.TaskCompleted,
			Priority:  tc.priority,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.points, result.PointsAwarded, string(tc.priority))
		total += tc.points
	}

	user := env.user(t, "alice")
	assert.Equal(t, total, user.EarnedPoints)
	assert.Equal(t, total, user.AvailablePoints)
}

func TestRecordEventRequiresIdentifiers(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceTaskEvent](env.container)
	require.NoError(t, err)

	_, err = service.RecordEvent(context.Background(), &models.TaskEvent{
		EventID: "evt-1",
		TaskID:  "task-1",
	})
	assert.Error(t, err)

	_, err = service.RecordEvent(context.Background(), &models.TaskEvent{
		EventID: "evt-1",
		UserID:  "alice",
	})
	assert.Error(t, err)
}

func TestRecordEventUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	service, err := do.Invoke[*ServiceTaskEvent](env.container)
	require.NoError(t, err)

	_, err = service.RecordEvent(context.Background(), &models.TaskEvent{
		EventID: "evt-1",
		UserID:  "ghost",
		TaskID:  "task-1",
		Status:  models.TaskAssigned,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCountCompleted(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, 0)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceTaskEvent](env.container)
	require.NoError(t, err)

	events := []*models.TaskEvent{
		{EventID: "e1", UserID: "alice", TaskID: "t1", EventType: EVENT_TASK_ASSIGNED, Status: models.TaskAssigned},
		{EventID: "e2", UserID: "alice", TaskID: "t1", EventType: EVENT_TASK_COMPLETED, Status: models.TaskCompleted},
		{EventID: "e3", UserID: "alice", TaskID: "t2", EventType: EVENT_TASK_COMPLETED, Status: models.TaskCompleted},
	}
	for _, event := range events {
		_, err := service.RecordEvent(ctx, event)
		require.NoError(t, err)
	}

	count, err := service.CountCompleted(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
