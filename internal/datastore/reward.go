package datastore

import (
	"context"
	"time"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Reward)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.RewardRedemption)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.RewardRedemption)(nil)).Index("index_reward_redemption_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindReward(ctx context.Context, db bun.IDB, rewardID string) (*models.Reward, error) {
	var r models.Reward
	err := db.NewSelect().Model(&r).Where("reward_id = ?", rewardID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func GetAllRewards(ctx context.Context, db bun.IDB) ([]models.Reward, error) {
	var rs []models.Reward
	err := db.NewSelect().Model(&rs).Order("cost_in_points ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rs, nil
}

func CreateReward(ctx context.Context, db bun.IDB, r *models.Reward) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	_, err := db.NewInsert().Model(r).Exec(ctx)
	return err
}

func EditReward(ctx context.Context, db bun.IDB, r *models.Reward) error {
	r.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(r).WherePK().Exec(ctx)
	return err
}

func FindRedemption(ctx context.Context, db bun.IDB, redemptionID string) (*models.RewardRedemption, error) {
	var r models.RewardRedemption
	err := db.NewSelect().Model(&r).Where("redemption_id = ?", redemptionID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func GetRedemptionsByUser(ctx context.Context, db bun.IDB, userID string) ([]models.RewardRedemption, error) {
	var rs []models.RewardRedemption
	err := db.NewSelect().Model(&rs).Where("user_id = ?", userID).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rs, nil
}

func CreateRedemption(ctx context.Context, db bun.IDB, r *models.RewardRedemption) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	_, err := db.NewInsert().Model(r).Exec(ctx)
	return err
}

func EditRedemption(ctx context.Context, db bun.IDB, r *models.RewardRedemption) error {
	r.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(r).WherePK().Exec(ctx)
	return err
}

type RewardStore struct {
	db *bun.DB
}

func NewRewardStore(db *bun.DB) *RewardStore {
	return &RewardStore{db: db}
}

func (s *RewardStore) Find(ctx context.Context, rewardID string) (*models.Reward, error) {
	return FindReward(ctx, idb(ctx, s.db), rewardID)
}

func (s *RewardStore) FindAll(ctx context.Context) ([]models.Reward, error) {
	return GetAllRewards(ctx, idb(ctx, s.db))
}

func (s *RewardStore) Insert(ctx context.Context, r *models.Reward) error {
	return CreateReward(ctx, idb(ctx, s.db), r)
}

func (s *RewardStore) Update(ctx context.Context, r *models.Reward) error {
	return EditReward(ctx, idb(ctx, s.db), r)
}

type RedemptionStore struct {
	db *bun.DB
}

func NewRedemptionStore(db *bun.DB) *RedemptionStore {
	return &RedemptionStore{db: db}
}

func (s *RedemptionStore) Find(ctx context.Context, redemptionID string) (*models.RewardRedemption, error) {
	return FindRedemption(ctx, idb(ctx, s.db), redemptionID)
}

func (s *RedemptionStore) FindByUser(ctx context.Context, userID string) ([]models.RewardRedemption, error) {
	return GetRedemptionsByUser(ctx, idb(ctx, s.db), userID)
}

func (s *RedemptionStore) Insert(ctx context.Context, r *models.RewardRedemption) error {
	return CreateRedemption(ctx, idb(ctx, s.db), r)
}

func (s *RedemptionStore) Update(ctx context.Context, r *models.RewardRedemption) error {
	return EditRedemption(ctx, idb(ctx, s.db), r)
}
