package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamify/internal/interfaces"
	"gamify/internal/models"

	"github.com/samber/do"
)

type ServiceTaskEvent struct {
	container  *do.Injector
	taskEvents interfaces.TaskEventRepository
	strategy   interfaces.TaskPointsStrategy
	notifier   interfaces.Notifier

	serviceUser   *ServiceUser
	servicePoints interfaces.PointsLedger
}

func NewServiceTaskEvent(container *do.Injector) (*ServiceTaskEvent, error) {
	taskEvents, err := do.Invoke[interfaces.TaskEventRepository](container)
	if err != nil {
		return nil, err
	}

	strategy, err := do.Invoke[interfaces.TaskPointsStrategy](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[interfaces.Notifier](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	servicePoints, err := do.Invoke[*ServicePoints](container)
	if err != nil {
		return nil, err
	}

	return &ServiceTaskEvent{container, taskEvents, strategy, notifier, serviceUser, servicePoints}, nil
}

// RecordEvent persists a task event for a known user and notifies the
// task-events channel. Assignment ends here; completion also pays out.
func (service *ServiceTaskEvent) RecordEvent(ctx context.Context, event *models.TaskEvent) (*models.TaskEventResult, error) {
	if event.UserID == "" || event.TaskID == "" {
		return nil, fmt.Errorf("userId and taskId are required")
	}

	if _, err := service.serviceUser.FindUserByID(ctx, event.UserID); err != nil {
		return nil, err
	}

	if err := service.taskEvents.Insert(ctx, event); err != nil {
		return nil, err
	}

	result := &models.TaskEventResult{Event: event}

	if event.Status == models.TaskCompleted {
		points := service.strategy.CalculatePoints(event)
		award, err := service.servicePoints.AwardPoints(ctx, event.UserID, points, EVENT_TASK_COMPLETED, map[string]any{
			"taskId":  event.TaskID,
			"eventId": event.EventID,
		})
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("points award failed: %v", err))
		} else {
			result.PointsAwarded = points
			result.Warnings = append(result.Warnings, award.Warnings...)
		}
	}

	//nolint:errcheck
	service.notifier.SendNotification(ctx, CHANNEL_TASK_EVENTS, map[string]any{
		"event":   event.EventType,
		"userId":  event.UserID,
		"taskId":  event.TaskID,
		"eventId": event.EventID,
		"status":  event.Status,
	})

	return result, nil
}

func (service *ServiceTaskEvent) GetEvent(ctx context.Context, eventID string) (*models.TaskEvent, error) {
	event, err := service.taskEvents.Find(ctx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task event %s not found", eventID)
	}
	return event, err
}

func (service *ServiceTaskEvent) GetEventsByUser(ctx context.Context, userID string) ([]models.TaskEvent, error) {
	return service.taskEvents.FindByUser(ctx, userID)
}

func (service *ServiceTaskEvent) CountCompleted(ctx context.Context, userID string) (int64, error) {
	return service.taskEvents.CountCompletedByUser(ctx, userID)
}
