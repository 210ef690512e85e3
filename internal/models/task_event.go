package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TaskStatus string

const (
	TaskAssigned  TaskStatus = "ASSIGNED"
	TaskCompleted TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

type TaskEvent struct {
	bun.BaseModel `bun:"table:task_event"`
	EventID       string         `bun:"event_id,pk" json:"event_id"`
	UserID        string         `bun:"user_id" json:"user_id"`
	TaskID        string         `bun:"task_id" json:"task_id"`
	EventType     string         `bun:"event_type" json:"event_type"`
	Status        TaskStatus     `bun:"status" json:"status"`
	Priority      TaskPriority   `bun:"priority" json:"priority"`
	Metadata      map[string]any `bun:"metadata,type:jsonb" json:"metadata"`
	DueDate       *time.Time     `bun:"due_date,nullzero" json:"due_date,omitempty"`
	CompletedAt   *time.Time     `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// TaskEventResult bundles the recorded event with whatever the downstream
// cascade produced. Warnings list best-effort steps that failed without
// failing the event itself.
type TaskEventResult struct {
	Event         *TaskEvent `json:"event"`
	PointsAwarded int64      `json:"points_awarded"`
	Warnings      []string   `json:"warnings,omitempty"`
}
