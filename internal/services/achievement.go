package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/pkg/caching"
	"gamify/internal/strategies"

	"github.com/google/uuid"
	"github.com/samber/do"
)

type ServiceAchievement struct {
	container        *do.Injector
	achievements     interfaces.AchievementRepository
	userAchievements interfaces.UserAchievementRepository
	users            interfaces.UserRepository
	statuses         interfaces.LadderStatusRepository
	taskEvents       interfaces.TaskEventRepository
	notifier         interfaces.Notifier
	cache            caching.Cache
}

func NewServiceAchievement(container *do.Injector) (*ServiceAchievement, error) {
	achievements, err := do.Invoke[interfaces.AchievementRepository](container)
	if err != nil {
		return nil, err
	}

	userAchievements, err := do.Invoke[interfaces.UserAchievementRepository](container)
	if err != nil {
		return nil, err
	}

	users, err := do.Invoke[interfaces.UserRepository](container)
	if err != nil {
		return nil, err
	}

	statuses, err := do.Invoke[interfaces.LadderStatusRepository](container)
	if err != nil {
		return nil, err
	}

	taskEvents, err := do.Invoke[interfaces.TaskEventRepository](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[interfaces.Notifier](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAchievement{container, achievements, userAchievements, users, statuses, taskEvents, notifier, cache}, nil
}

// ProcessAchievements runs every achievement's criteria against the user's
// current standing after eventType. Already-held achievements are skipped,
// so replays never double-award. Returns the achievements granted by this
// call.
func (service *ServiceAchievement) ProcessAchievements(ctx context.Context, userID string, eventType string) ([]models.Achievement, error) {
	user, err := service.users.Find(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	all, err := service.GetAllAchievements(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}

	in := strategies.CriteriaInput{
		EventType:    eventType,
		EarnedPoints: user.EarnedPoints,
	}
	status, err := service.statuses.Find(ctx, userID)
	if err == nil {
		in.CurrentLevel = status.LevelNumber
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	completed, err := service.taskEvents.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.CompletedTasks = completed

	var awarded []models.Achievement
	for i := range all {
		a := all[i]
		_, err := service.userAchievements.Find(ctx, userID, a.AchievementID)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return awarded, err
		}

		if !strategies.EvaluateCriteria(a.Criteria, in) {
			continue
		}

		ua := &models.UserAchievement{
			UserID:        userID,
			AchievementID: a.AchievementID,
			Metadata:      map[string]any{"eventType": eventType},
		}
		if err := service.userAchievements.Insert(ctx, ua); err != nil {
			return awarded, err
		}
		awarded = append(awarded, a)

		//nolint:errcheck
		service.notifier.SendNotification(ctx, CHANNEL_ACHIEVEMENTS, map[string]any{
			"event":         EVENT_ACHIEVEMENT_EARNED,
			"userId":        userID,
			"achievementId": a.AchievementID,
			"name":          a.Name,
		})
	}

	if len(awarded) > 0 {
		//nolint:errcheck
		service.cache.Delete(ctx, DBKeyUserAchievements(userID))
	}

	return awarded, nil
}

func (service *ServiceAchievement) GetAllAchievements(ctx context.Context) ([]models.Achievement, error) {
	return caching.UseCache(ctx, service.cache, DBKeyAchievements(), CACHE_TTL_1_MIN, func() ([]models.Achievement, error) {
		return service.achievements.FindAll(ctx)
	})
}

func (service *ServiceAchievement) GetAchievement(ctx context.Context, achievementID string) (*models.Achievement, error) {
	a, err := service.achievements.Find(ctx, achievementID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("achievement %s not found", achievementID)
	}
	return a, err
}

func (service *ServiceAchievement) GetUserAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	return caching.UseCache(ctx, service.cache, DBKeyUserAchievements(userID), CACHE_TTL_15_SECONDS, func() ([]models.UserAchievement, error) {
		return service.userAchievements.FindByUser(ctx, userID)
	})
}

// CreateAchievement registers a new achievement. Names are unique across the
// catalog.
func (service *ServiceAchievement) CreateAchievement(ctx context.Context, a *models.Achievement) error {
	if a.Criteria == nil {
		return fmt.Errorf("criteria is required")
	}
	if err := a.Criteria.Validate(); err != nil {
		return err
	}

	_, err := service.achievements.FindByName(ctx, a.Name)
	if err == nil {
		return ErrAchievementNameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if a.AchievementID == "" {
		a.AchievementID = uuid.NewString()
	}
	if err := service.achievements.Insert(ctx, a); err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAchievements())
	return nil
}

func (service *ServiceAchievement) UpdateAchievement(ctx context.Context, a *models.Achievement) error {
	if a.Criteria != nil {
		if err := a.Criteria.Validate(); err != nil {
			return err
		}
	}

	if err := service.achievements.Update(ctx, a); err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAchievements())
	return nil
}

// DeleteAchievement removes an achievement from the catalog. Deletion is
// refused while any user still holds it.
func (service *ServiceAchievement) DeleteAchievement(ctx context.Context, achievementID string) error {
	held, err := service.userAchievements.CountByAchievement(ctx, achievementID)
	if err != nil {
		return err
	}
	if held > 0 {
		return ErrAchievementInUse
	}

	if err := service.achievements.Delete(ctx, achievementID); err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAchievements())
	return nil
}
