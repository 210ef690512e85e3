package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	events []*models.TaskEvent
	err    error
	result *models.TaskEventResult
}

func (r *recorderStub) RecordEvent(ctx context.Context, event *models.TaskEvent) (*models.TaskEventResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.events = append(r.events, event)
	if r.result != nil {
		return r.result, nil
	}
	return &models.TaskEventResult{Event: event}, nil
}

func TestFactoryBuildsAssignedCommand(t *testing.T) {
	recorder := &recorderStub{}
	factory := NewFactory(recorder)

	cmd, err := factory.FromInput(TaskEventInput{
		UserID:    "alice",
		TaskID:    "task-1",
		EventType: EVENT_TASK_ASSIGNED,
		Priority:  models.PriorityHigh,
	})
	require.NoError(t, err)

	_, err = cmd.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, recorder.events, 1)

	event := recorder.events[0]
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, models.TaskAssigned, event.Status)
	assert.Equal(t, EVENT_TASK_ASSIGNED, event.EventType)
	assert.Equal(t, models.PriorityHigh, event.Priority)
	assert.Nil(t, event.DueDate)
}

func TestFactoryParsesDueDate(t *testing.T) {
	recorder := &recorderStub{}
	factory := NewFactory(recorder)

	cmd, err := factory.FromInput(TaskEventInput{
		UserID:    "alice",
		TaskID:    "task-1",
		EventType: EVENT_TASK_ASSIGNED,
		DueDate:   "2026-03-01T12:00:00Z",
	})
	require.NoError(t, err)

	_, err = cmd.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, recorder.events, 1)

	due := recorder.events[0].DueDate
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), due.UTC())

	_, err = factory.FromInput(TaskEventInput{
		UserID:    "alice",
		TaskID:    "task-1",
		EventType: EVENT_TASK_ASSIGNED,
		DueDate:   "next tuesday",
	})
	assert.Error(t, err)
}

func TestFactoryBuildsCompletedCommand(t *testing.T) {
	recorder := &recorderStub{}
	factory := NewFactory(recorder)

	cmd, err := factory.FromInput(TaskEventInput{
		UserID:    "alice",
		TaskID:    "task-1",
		EventType: EVENT_TASK_COMPLETED,
	})
	require.NoError(t, err)

	_, err = cmd.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, models.TaskCompleted, recorder.events[0].Status)
	require.NotNil(t, recorder.events[0].CompletedAt)
}

func TestFactoryRejectsBadInput(t *testing.T) {
	factory := NewFactory(&recorderStub{})

	_, err := factory.FromInput(TaskEventInput{TaskID: "task-1", EventType: EVENT_TASK_ASSIGNED})
	assert.Error(t, err)

	_, err = factory.FromInput(TaskEventInput{UserID: "alice", EventType: EVENT_TASK_ASSIGNED})
	assert.Error(t, err)

	_, err = factory.FromInput(TaskEventInput{UserID: "alice", TaskID: "task-1", EventType: "TASK_PONDERED"})
	assert.Error(t, err)
}

func TestCompositeAccumulates(t *testing.T) {
	recorder := &recorderStub{result: &models.TaskEventResult{
		PointsAwarded: 10,
		Warnings:      []string{"sync lagged"},
	}}
	factory := NewFactory(recorder)

	composite := NewComposite()
	for _, task := range []string{"t1", "t2"} {
		cmd, err := factory.FromInput(TaskEventInput{UserID: "alice", TaskID: task, EventType: EVENT_TASK_COMPLETED})
		require.NoError(t, err)
		composite.Add(cmd)
	}

	result, err := composite.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20), result.PointsAwarded)
	assert.Len(t, result.Warnings, 2)
}

func TestCompositeStopsOnFirstError(t *testing.T) {
	boom := errors.New("storage down")
	factory := NewFactory(&recorderStub{err: boom})

	cmd, err := factory.FromInput(TaskEventInput{UserID: "alice", TaskID: "t1", EventType: EVENT_TASK_ASSIGNED})
	require.NoError(t, err)

	_, err = NewComposite(cmd, cmd).Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFactoryBuildsBatch(t *testing.T) {
	recorder := &recorderStub{}
	factory := NewFactory(recorder)

	cmd, err := factory.FromInputs([]TaskEventInput{
		{UserID: "alice", TaskID: "task-1", EventType: EVENT_TASK_ASSIGNED},
		{UserID: "alice", TaskID: "task-1", EventType: EVENT_TASK_COMPLETED},
	})
	require.NoError(t, err)

	_, err = cmd.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, recorder.events, 2)
	assert.Equal(t, models.TaskAssigned, recorder.events[0].Status)
	assert.Equal(t, models.TaskCompleted, recorder.events[1].Status)

	_, err = factory.FromInputs(nil)
	assert.Error(t, err)

	_, err = factory.FromInputs([]TaskEventInput{
		{UserID: "alice", TaskID: "task-1", EventType: "TASK_PONDERED"},
	})
	assert.Error(t, err)
}
