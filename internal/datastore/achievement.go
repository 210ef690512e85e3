package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAchievement(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Achievement)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.UserAchievement)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserAchievement)(nil)).Index("index_user_achievement_achievement_id").IfNotExists().Column("achievement_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindAchievement(ctx context.Context, db bun.IDB, achievementID string) (*models.Achievement, error) {
	var a models.Achievement
	err := db.NewSelect().Model(&a).Where("achievement_id = ?", achievementID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func FindAchievementByName(ctx context.Context, db bun.IDB, name string) (*models.Achievement, error) {
	var a models.Achievement
	err := db.NewSelect().Model(&a).Where("name = ?", name).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func GetAllAchievements(ctx context.Context, db bun.IDB) ([]models.Achievement, error) {
	var as []models.Achievement
	err := db.NewSelect().Model(&as).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return as, nil
}

func CreateAchievement(ctx context.Context, db bun.IDB, a *models.Achievement) error {
	a.CreatedAt = time.Now()
	_, err := db.NewInsert().Model(a).Exec(ctx)
	return err
}

func EditAchievement(ctx context.Context, db bun.IDB, a *models.Achievement) error {
	_, err := db.NewUpdate().Model(a).WherePK().Exec(ctx)
	return err
}

func DeleteAchievement(ctx context.Context, db bun.IDB, achievementID string) error {
	_, err := db.NewDelete().Model((*models.Achievement)(nil)).Where("achievement_id = ?", achievementID).Exec(ctx)
	return err
}

func FindUserAchievement(ctx context.Context, db bun.IDB, userID, achievementID string) (*models.UserAchievement, error) {
	var ua models.UserAchievement
	err := db.NewSelect().Model(&ua).
		Where("user_id = ?", userID).
		Where("achievement_id = ?", achievementID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &ua, nil
}

func GetUserAchievements(ctx context.Context, db bun.IDB, userID string) ([]models.UserAchievement, error) {
	var uas []models.UserAchievement
	err := db.NewSelect().Model(&uas).Where("user_id = ?", userID).Order("earned_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return uas, nil
}

func CountUsersWithAchievement(ctx context.Context, db bun.IDB, achievementID string) (int64, error) {
	count, err := db.NewSelect().Model((*models.UserAchievement)(nil)).Where("achievement_id = ?", achievementID).Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

func CreateUserAchievement(ctx context.Context, db bun.IDB, ua *models.UserAchievement) error {
	ua.EarnedAt = time.Now()
	_, err := db.NewInsert().Model(ua).Exec(ctx)
	return err
}

type AchievementStore struct {
	db *bun.DB
}

func NewAchievementStore(db *bun.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

func (s *AchievementStore) Find(ctx context.Context, achievementID string) (*models.Achievement, error) {
	return FindAchievement(ctx, idb(ctx, s.db), achievementID)
}

func (s *AchievementStore) FindByName(ctx context.Context, name string) (*models.Achievement, error) {
	return FindAchievementByName(ctx, idb(ctx, s.db), name)
}

func (s *AchievementStore) FindAll(ctx context.Context) ([]models.Achievement, error) {
	return GetAllAchievements(ctx, idb(ctx, s.db))
}

func (s *AchievementStore) Insert(ctx context.Context, a *models.Achievement) error {
	return CreateAchievement(ctx, idb(ctx, s.db), a)
}

func (s *AchievementStore) Update(ctx context.Context, a *models.Achievement) error {
	return EditAchievement(ctx, idb(ctx, s.db), a)
}

func (s *AchievementStore) Delete(ctx context.Context, achievementID string) error {
	return DeleteAchievement(ctx, idb(ctx, s.db), achievementID)
}

type UserAchievementStore struct {
	db *bun.DB
}

func NewUserAchievementStore(db *bun.DB) *UserAchievementStore {
	return &UserAchievementStore{db: db}
}

func (s *UserAchievementStore) Find(ctx context.Context, userID, achievementID string) (*models.UserAchievement, error) {
	return FindUserAchievement(ctx, idb(ctx, s.db), userID, achievementID)
}

func (s *UserAchievementStore) FindByUser(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	return GetUserAchievements(ctx, idb(ctx, s.db), userID)
}

func (s *UserAchievementStore) CountByAchievement(ctx context.Context, achievementID string) (int64, error) {
	return CountUsersWithAchievement(ctx, idb(ctx, s.db), achievementID)
}

func (s *UserAchievementStore) Insert(ctx context.Context, ua *models.UserAchievement) error {
	return CreateUserAchievement(ctx, idb(ctx, s.db), ua)
}
