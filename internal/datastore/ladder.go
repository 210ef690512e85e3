package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableLadder(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LadderLevel)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.UserLadderStatus)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetAllLadderLevels(ctx context.Context, db bun.IDB) ([]models.LadderLevel, error) {
	var levels []models.LadderLevel
	err := db.NewSelect().Model(&levels).Order("level ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return levels, nil
}

func FindLadderLevel(ctx context.Context, db bun.IDB, level int64) (*models.LadderLevel, error) {
	var l models.LadderLevel
	err := db.NewSelect().Model(&l).Where("level = ?", level).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func CreateLadderLevel(ctx context.Context, db bun.IDB, level *models.LadderLevel) error {
	level.CreatedAt = time.Now()
	_, err := db.NewInsert().Model(level).Exec(ctx)
	return err
}

func EditLadderLevel(ctx context.Context, db bun.IDB, level *models.LadderLevel) error {
	_, err := db.NewUpdate().Model(level).WherePK().Exec(ctx)
	return err
}

func DeleteLadderLevel(ctx context.Context, db bun.IDB, level int64) error {
	_, err := db.NewDelete().Model((*models.LadderLevel)(nil)).Where("level = ?", level).Exec(ctx)
	return err
}

func CountLadderLevels(ctx context.Context, db bun.IDB) (int64, error) {
	count, err := db.NewSelect().Model((*models.LadderLevel)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

func FindUserLadderStatus(ctx context.Context, db bun.IDB, userID string) (*models.UserLadderStatus, error) {
	var status models.UserLadderStatus
	err := db.NewSelect().Model(&status).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &status, nil
}

func UpsertUserLadderStatus(ctx context.Context, db bun.IDB, status *models.UserLadderStatus) error {
	status.UpdatedAt = time.Now()
	_, err := db.NewInsert().Model(status).
		On("CONFLICT (user_id) DO UPDATE").
		Set("level_number = EXCLUDED.level_number").
		Set("earned_points = EXCLUDED.earned_points").
		Set("points_to_next_level = EXCLUDED.points_to_next_level").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func CountUsersAtLevel(ctx context.Context, db bun.IDB, level int64) (int64, error) {
	count, err := db.NewSelect().Model((*models.UserLadderStatus)(nil)).Where("level_number = ?", level).Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

type LadderLevelStore struct {
	db *bun.DB
}

func NewLadderLevelStore(db *bun.DB) *LadderLevelStore {
	return &LadderLevelStore{db: db}
}

func (s *LadderLevelStore) FindAll(ctx context.Context) ([]models.LadderLevel, error) {
	return GetAllLadderLevels(ctx, idb(ctx, s.db))
}

func (s *LadderLevelStore) Find(ctx context.Context, level int64) (*models.LadderLevel, error) {
	return FindLadderLevel(ctx, idb(ctx, s.db), level)
}

func (s *LadderLevelStore) Insert(ctx context.Context, level *models.LadderLevel) error {
	return CreateLadderLevel(ctx, idb(ctx, s.db), level)
}

func (s *LadderLevelStore) Update(ctx context.Context, level *models.LadderLevel) error {
	return EditLadderLevel(ctx, idb(ctx, s.db), level)
}

func (s *LadderLevelStore) Delete(ctx context.Context, level int64) error {
	return DeleteLadderLevel(ctx, idb(ctx, s.db), level)
}

func (s *LadderLevelStore) Count(ctx context.Context) (int64, error) {
	return CountLadderLevels(ctx, idb(ctx, s.db))
}

type LadderStatusStore struct {
	db *bun.DB
}

func NewLadderStatusStore(db *bun.DB) *LadderStatusStore {
	return &LadderStatusStore{db: db}
}

func (s *LadderStatusStore) Find(ctx context.Context, userID string) (*models.UserLadderStatus, error) {
	return FindUserLadderStatus(ctx, idb(ctx, s.db), userID)
}

func (s *LadderStatusStore) Upsert(ctx context.Context, status *models.UserLadderStatus) error {
	return UpsertUserLadderStatus(ctx, idb(ctx, s.db), status)
}

func (s *LadderStatusStore) CountByLevel(ctx context.Context, level int64) (int64, error) {
	return CountUsersAtLevel(ctx, idb(ctx, s.db), level)
}
