package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableLeaderboard(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LeaderboardEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LeaderboardEntry)(nil)).Index("index_leaderboard_earned_points").IfNotExists().Column("earned_points").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindLeaderboardEntry(ctx context.Context, db bun.IDB, userID string) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := db.NewSelect().Model(&entry).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func GetLeaderboardPage(ctx context.Context, db bun.IDB, offset, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := db.NewSelect().Model(&entries).
		Order("rank ASC").
		Order("user_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func GetLeaderboardPageByDepartment(ctx context.Context, db bun.IDB, department string, offset, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := db.NewSelect().Model(&entries).
		Where("department = ?", department).
		Order("rank ASC").
		Order("user_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func GetAllLeaderboardEntries(ctx context.Context, db bun.IDB) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := db.NewSelect().Model(&entries).Order("earned_points DESC").Order("user_id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func CountLeaderboardEntries(ctx context.Context, db bun.IDB) (int64, error) {
	count, err := db.NewSelect().Model((*models.LeaderboardEntry)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

func CountLeaderboardEntriesByDepartment(ctx context.Context, db bun.IDB, department string) (int64, error) {
	count, err := db.NewSelect().Model((*models.LeaderboardEntry)(nil)).Where("department = ?", department).Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

func CreateLeaderboardEntry(ctx context.Context, db bun.IDB, entry *models.LeaderboardEntry) error {
	entry.UpdatedAt = time.Now()
	_, err := db.NewInsert().Model(entry).Exec(ctx)
	return err
}

func EditLeaderboardEntry(ctx context.Context, db bun.IDB, entry *models.LeaderboardEntry) error {
	entry.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(entry).WherePK().Exec(ctx)
	return err
}

type LeaderboardStore struct {
	db *bun.DB
}

func NewLeaderboardStore(db *bun.DB) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

func (s *LeaderboardStore) Find(ctx context.Context, userID string) (*models.LeaderboardEntry, error) {
	return FindLeaderboardEntry(ctx, idb(ctx, s.db), userID)
}

func (s *LeaderboardStore) FindPage(ctx context.Context, offset, limit int) ([]models.LeaderboardEntry, error) {
	return GetLeaderboardPage(ctx, idb(ctx, s.db), offset, limit)
}

func (s *LeaderboardStore) FindPageByDepartment(ctx context.Context, department string, offset, limit int) ([]models.LeaderboardEntry, error) {
	return GetLeaderboardPageByDepartment(ctx, idb(ctx, s.db), department, offset, limit)
}

func (s *LeaderboardStore) FindAll(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return GetAllLeaderboardEntries(ctx, idb(ctx, s.db))
}

func (s *LeaderboardStore) Count(ctx context.Context) (int64, error) {
	return CountLeaderboardEntries(ctx, idb(ctx, s.db))
}

func (s *LeaderboardStore) CountByDepartment(ctx context.Context, department string) (int64, error) {
	return CountLeaderboardEntriesByDepartment(ctx, idb(ctx, s.db), department)
}

func (s *LeaderboardStore) Insert(ctx context.Context, entry *models.LeaderboardEntry) error {
	return CreateLeaderboardEntry(ctx, idb(ctx, s.db), entry)
}

func (s *LeaderboardStore) Update(ctx context.Context, entry *models.LeaderboardEntry) error {
	return EditLeaderboardEntry(ctx, idb(ctx, s.db), entry)
}
