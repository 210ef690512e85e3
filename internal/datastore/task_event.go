package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTaskEvent(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.TaskEvent)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.TaskEvent)(nil)).Index("index_task_event_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindTaskEvent(ctx context.Context, db bun.IDB, eventID string) (*models.TaskEvent, error) {
	var e models.TaskEvent
	err := db.NewSelect().Model(&e).Where("event_id = ?", eventID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func GetTaskEventsByUser(ctx context.Context, db bun.IDB, userID string) ([]models.TaskEvent, error) {
	var es []models.TaskEvent
	err := db.NewSelect().Model(&es).Where("user_id = ?", userID).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return es, nil
}

func CountCompletedTasksByUser(ctx context.Context, db bun.IDB, userID string) (int64, error) {
	count, err := db.NewSelect().Model((*models.TaskEvent)(nil)).
		Where("user_id = ?", userID).
		Where("status = ?", models.TaskCompleted).
		Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

func CreateTaskEvent(ctx context.Context, db bun.IDB, e *models.TaskEvent) error {
	e.CreatedAt = time.Now()
	_, err := db.NewInsert().Model(e).Exec(ctx)
	return err
}

type TaskEventStore struct {
	db *bun.DB
}

func NewTaskEventStore(db *bun.DB) *TaskEventStore {
	return &TaskEventStore{db: db}
}

func (s *TaskEventStore) Find(ctx context.Context, eventID string) (*models.TaskEvent, error) {
	return FindTaskEvent(ctx, idb(ctx, s.db), eventID)
}

func (s *TaskEventStore) FindByUser(ctx context.Context, userID string) ([]models.TaskEvent, error) {
	return GetTaskEventsByUser(ctx, idb(ctx, s.db), userID)
}

func (s *TaskEventStore) CountCompletedByUser(ctx context.Context, userID string) (int64, error) {
	return CountCompletedTasksByUser(ctx, idb(ctx, s.db), userID)
}

func (s *TaskEventStore) Insert(ctx context.Context, e *models.TaskEvent) error {
	return CreateTaskEvent(ctx, idb(ctx, s.db), e)
}
