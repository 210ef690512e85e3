package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceLadder struct {
	container *do.Injector
	levels    interfaces.LadderLevelRepository
	statuses  interfaces.LadderStatusRepository
	cache     caching.Cache

	serviceConfig *ServiceConfig
}

func NewServiceLadder(container *do.Injector) (*ServiceLadder, error) {
	levels, err := do.Invoke[interfaces.LadderLevelRepository](container)
	if err != nil {
		return nil, err
	}

	statuses, err := do.Invoke[interfaces.LadderStatusRepository](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLadder{container, levels, statuses, cache, serviceConfig}, nil
}

// GetLevels returns the ladder sorted ascending, seeding the default level
// when the table is empty.
func (service *ServiceLadder) GetLevels(ctx context.Context) ([]models.LadderLevel, error) {
	return caching.UseCache(ctx, service.cache, DBKeyLadderLevels(), CACHE_TTL_1_MIN, func() ([]models.LadderLevel, error) {
		levels, err := service.levels.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(levels) > 0 {
			return levels, nil
		}

		label := service.serviceConfig.GetConfigWithDefault(ctx, CONFIG_DEFAULT_LEVEL_LABEL, DEFAULT_LEVEL_LABEL)
		defaultLevel := models.LadderLevel{
			Level:          DEFAULT_LEVEL_NUMBER,
			Label:          label,
			PointsRequired: 0,
		}
		if err := service.levels.Insert(ctx, &defaultLevel); err != nil {
			return nil, err
		}

		return []models.LadderLevel{defaultLevel}, nil
	})
}

func (service *ServiceLadder) CreateLevel(ctx context.Context, level *models.LadderLevel) error {
	if level.Level <= 0 {
		return fmt.Errorf("level number must be positive")
	}
	if level.PointsRequired < 0 {
		return fmt.Errorf("points required must not be negative")
	}
	if err := service.checkThresholdOrder(ctx, level); err != nil {
		return err
	}

	if err := service.levels.Insert(ctx, level); err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyLadderLevels())
	return nil
}

func (service *ServiceLadder) UpdateLevel(ctx context.Context, level *models.LadderLevel) error {
	if err := service.checkThresholdOrder(ctx, level); err != nil {
		return err
	}

	err := service.levels.Update(ctx, level)
	if err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyLadderLevels())
	return nil
}

// checkThresholdOrder rejects a level whose threshold would break the
// non-decreasing order the climb scan in UpdateStatus relies on.
func (service *ServiceLadder) checkThresholdOrder(ctx context.Context, level *models.LadderLevel) error {
	levels, err := service.levels.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range levels {
		if levels[i].Level == level.Level {
			continue
		}
		if levels[i].Level < level.Level && levels[i].PointsRequired > level.PointsRequired {
			return ErrLevelThresholdOrder
		}
		if levels[i].Level > level.Level && levels[i].PointsRequired < level.PointsRequired {
			return ErrLevelThresholdOrder
		}
	}
	return nil
}

// DeleteLevel removes a ladder level. Levels with users standing on them
// cannot be removed.
func (service *ServiceLadder) DeleteLevel(ctx context.Context, level int64) error {
	if _, err := service.levels.Find(ctx, level); err != nil {
		return err
	}

	occupied, err := service.statuses.CountByLevel(ctx, level)
	if err != nil {
		return err
	}
	if occupied > 0 {
		return ErrLevelOccupied
	}

	if err := service.levels.Delete(ctx, level); err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyLadderLevels())
	return nil
}

// UpdateStatus recomputes the user's ladder position from earnedPoints.
// The user lands on the highest level whose threshold is met, so a large
// award can jump several levels at once. Reports whether the level rose.
func (service *ServiceLadder) UpdateStatus(ctx context.Context, userID string, earnedPoints int64) (*models.UserLadderStatus, bool, error) {
	levels, err := service.GetLevels(ctx)
	if err != nil {
		return nil, false, err
	}

	current := levels[0]
	var next *models.LadderLevel
	for i := range levels {
		if levels[i].PointsRequired <= earnedPoints {
			current = levels[i]
		} else {
			next = &levels[i]
			break
		}
	}

	// at the top of the ladder there is nothing left to climb
	var toNext int64
	if next != nil {
		toNext = next.PointsRequired - earnedPoints
		if toNext < 0 {
			toNext = 0
		}
	}

	previous, err := service.statuses.Find(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	status := &models.UserLadderStatus{
		UserID:            userID,
		LevelNumber:       current.Level,
		EarnedPoints:      earnedPoints,
		PointsToNextLevel: toNext,
	}
	if err := service.statuses.Upsert(ctx, status); err != nil {
		return nil, false, err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUserLadderStatus(userID))

	leveledUp := previous != nil && status.LevelNumber > previous.LevelNumber
	return status, leveledUp, nil
}

// GetStatus reads the user's ladder position, materializing it on first
// access so reads never fail for a known user.
func (service *ServiceLadder) GetStatus(ctx context.Context, userID string, earnedPoints int64) (*models.LadderStatus, error) {
	status, err := caching.UseCache(ctx, service.cache, DBKeyUserLadderStatus(userID), CACHE_TTL_15_SECONDS, func() (*models.UserLadderStatus, error) {
		status, err := service.statuses.Find(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			status, _, err = service.UpdateStatus(ctx, userID, earnedPoints)
		}
		return status, err
	})
	if err != nil {
		return nil, err
	}

	level, err := service.levels.Find(ctx, status.LevelNumber)
	if err != nil {
		return nil, err
	}

	return &models.LadderStatus{
		CurrentLevel:      status.LevelNumber,
		LevelLabel:        level.Label,
		EarnedPoints:      status.EarnedPoints,
		PointsToNextLevel: status.PointsToNextLevel,
	}, nil
}

func (service *ServiceLadder) CountUsersAtLevel(ctx context.Context, level int64) (int64, error) {
	return service.statuses.CountByLevel(ctx, level)
}
