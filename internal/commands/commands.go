// Package commands turns incoming task events into executable units. Each
// event type maps to one command; the factory rejects types it does not
// know, so malformed input never reaches the ledger.
package commands

import (
	"context"
	"fmt"
	"time"

	"gamify/internal/models"

	"github.com/google/uuid"
)

// TaskEventRecorder is the slice of the task event service commands need.
type TaskEventRecorder interface {
	RecordEvent(ctx context.Context, event *models.TaskEvent) (*models.TaskEventResult, error)
}

type Command interface {
	Execute(ctx context.Context) (*models.TaskEventResult, error)
}

const (
	EVENT_TASK_ASSIGNED  = "TASK_ASSIGNED"
	EVENT_TASK_COMPLETED = "TASK_COMPLETED"
)

// TaskEventInput is the raw payload a command is built from. DueDate, when
// present, must be RFC 3339.
type TaskEventInput struct {
	UserID    string              `json:"user_id"`
	TaskID    string              `json:"task_id"`
	EventType string              `json:"event_type"`
	Priority  models.TaskPriority `json:"priority"`
	DueDate   string              `json:"due_date,omitempty"`
	Metadata  map[string]any      `json:"metadata"`
}

type taskAssignedCommand struct {
	recorder TaskEventRecorder
	input    TaskEventInput
	dueDate  *time.Time
}

func (c *taskAssignedCommand) Execute(ctx context.Context) (*models.TaskEventResult, error) {
	return c.recorder.RecordEvent(ctx, &models.TaskEvent{
		EventID:   uuid.NewString(),
		UserID:    c.input.UserID,
		TaskID:    c.input.TaskID,
		EventType: EVENT_TASK_ASSIGNED,
		Status:    models.TaskAssigned,
		Priority:  c.input.Priority,
		DueDate:   c.dueDate,
		Metadata:  c.input.Metadata,
	})
}

type taskCompletedCommand struct {
	recorder TaskEventRecorder
	input    TaskEventInput
}

func (c *taskCompletedCommand) Execute(ctx context.Context) (*models.TaskEventResult, error) {
	now := time.Now()
	return c.recorder.RecordEvent(ctx, &models.TaskEvent{
		EventID:     uuid.NewString(),
		UserID:      c.input.UserID,
		TaskID:      c.input.TaskID,
		EventType:   EVENT_TASK_COMPLETED,
		Status:      models.TaskCompleted,
		Priority:    c.input.Priority,
		CompletedAt: &now,
		Metadata:    c.input.Metadata,
	})
}

type Factory struct {
	recorder TaskEventRecorder
}

func NewFactory(recorder TaskEventRecorder) *Factory {
	return &Factory{recorder: recorder}
}

// FromInput builds the command for input.EventType.
func (f *Factory) FromInput(input TaskEventInput) (Command, error) {
	if input.UserID == "" || input.TaskID == "" {
		return nil, fmt.Errorf("userId and taskId are required")
	}

	switch input.EventType {
	case EVENT_TASK_ASSIGNED:
		var dueDate *time.Time
		if input.DueDate != "" {
			parsed, err := time.Parse(time.RFC3339, input.DueDate)
			if err != nil {
				return nil, fmt.Errorf("invalid due date %q: %w", input.DueDate, err)
			}
			dueDate = &parsed
		}
		return &taskAssignedCommand{recorder: f.recorder, input: input, dueDate: dueDate}, nil
	case EVENT_TASK_COMPLETED:
		return &taskCompletedCommand{recorder: f.recorder, input: input}, nil
	}
	return nil, fmt.Errorf("unknown task event type %q", input.EventType)
}

// FromInputs builds one command per input and bundles them so a batch of
// events executes in order as a unit.
func (f *Factory) FromInputs(inputs []TaskEventInput) (*Composite, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no task events given")
	}

	composite := NewComposite()
	for i, input := range inputs {
		cmd, err := f.FromInput(input)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		composite.Add(cmd)
	}
	return composite, nil
}
