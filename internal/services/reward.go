package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/samber/do"
)

type ServiceReward struct {
	container *do.Injector
	rewards   interfaces.RewardRepository
	cache     caching.Cache
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
	rewards, err := do.Invoke[interfaces.RewardRepository](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, rewards, cache}, nil
}

func (service *ServiceReward) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	reward, err := service.rewards.Find(ctx, rewardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRewardNotFound
	}
	return reward, err
}

func (service *ServiceReward) GetAllRewards(ctx context.Context) ([]models.Reward, error) {
	return caching.UseCache(ctx, service.cache, DBKeyRewards(), CACHE_TTL_1_MIN, func() ([]models.Reward, error) {
		return service.rewards.FindAll(ctx)
	})
}

func (service *ServiceReward) CreateReward(ctx context.Context, reward *models.Reward) error {
	if reward.CostInPoints <= 0 {
		return fmt.Errorf("reward cost must be positive")
	}

	if reward.RewardID == "" {
		reward.RewardID = uuid.NewString()
	}
	if err := service.rewards.Insert(ctx, reward); err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyRewards())
	return nil
}

func (service *ServiceReward) UpdateReward(ctx context.Context, reward *models.Reward) error {
	err := service.rewards.Update(ctx, reward)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRewardNotFound
	}
	if err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyRewards())
	return nil
}
