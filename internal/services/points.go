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

// ServicePoints owns the ledger. Every award and spend funnels through here
// so the balance invariants hold no matter which feature triggered the
// change.
type ServicePoints struct {
	container    *do.Injector
	users        interfaces.UserRepository
	transactions interfaces.PointsTransactionRepository
	atomic       interfaces.Atomic
	locker       interfaces.Locker
	notifier     interfaces.Notifier
	cache        caching.Cache

	serviceLadder      *ServiceLadder
	serviceLeaderboard *ServiceLeaderboard
	serviceAchievement interfaces.AchievementProcessor
}

func NewServicePoints(container *do.Injector) (*ServicePoints, error) {
	users, err := do.Invoke[interfaces.UserRepository](container)
	if err != nil {
		return nil, err
	}

	transactions, err := do.Invoke[interfaces.PointsTransactionRepository](container)
	if err != nil {
		return nil, err
	}

	atomic, err := do.Invoke[interfaces.Atomic](container)
	if err != nil {
		return nil, err
	}

	locker, err := do.Invoke[interfaces.Locker](container)
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

	serviceLadder, err := do.Invoke[*ServiceLadder](container)
	if err != nil {
		return nil, err
	}

	serviceLeaderboard, err := do.Invoke[*ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	serviceAchievement, err := do.Invoke[*ServiceAchievement](container)
	if err != nil {
		return nil, err
	}

	return &ServicePoints{
		container, users, transactions, atomic, locker, notifier, cache,
		serviceLadder, serviceLeaderboard, serviceAchievement,
	}, nil
}

// AwardPoints credits the user and appends the ledger entry in one
// transaction, then cascades ladder, leaderboard and achievement updates.
// Cascade failures come back as warnings on the result, never as errors;
// the credit itself is already durable at that point.
func (service *ServicePoints) AwardPoints(ctx context.Context, userID string, points int64, eventType string, metadata map[string]any) (*models.AwardResult, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}

	mutex := service.locker.NewMutex(LockKeyUserPoints(userID))
	if err := mutex.TryLock(); err != nil {
		return nil, ErrUserLock
	}
	//nolint:errcheck
	defer mutex.Unlock()

	var user *models.User
	err := service.atomic.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = service.users.Find(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		user.EarnedPoints += points
		user.AvailablePoints += points
		if err := service.users.Update(ctx, user); err != nil {
			return err
		}

		return service.transactions.Insert(ctx, &models.PointsTransaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			EventType:     eventType,
			Points:        points,
			Metadata:      metadata,
		})
	})
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(userID))

	result := &models.AwardResult{NewEarnedTotal: user.EarnedPoints}
	service.cascade(ctx, user, eventType, result)

	//nolint:errcheck
	service.notifier.SendNotification(ctx, CHANNEL_POINTS, map[string]any{
		"event":       EVENT_POINTS_EARNED,
		"userId":      userID,
		"points":      points,
		"eventType":   eventType,
		"earnedTotal": user.EarnedPoints,
	})

	return result, nil
}

func (service *ServicePoints) cascade(ctx context.Context, user *models.User, eventType string, result *models.AwardResult) {
	status, leveledUp, err := service.serviceLadder.UpdateStatus(ctx, user.ID, user.EarnedPoints)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("ladder update failed: %v", err))
	}

	var levelNumber int64
	if status != nil {
		levelNumber = status.LevelNumber
	}
	if err := service.serviceLeaderboard.SyncEntry(ctx, user.ID, user.EarnedPoints, levelNumber); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("leaderboard sync failed: %v", err))
	}

	if _, err := service.serviceAchievement.ProcessAchievements(ctx, user.ID, eventType); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("achievement processing failed: %v", err))
	}

	if leveledUp {
		//nolint:errcheck
		service.notifier.SendNotification(ctx, CHANNEL_POINTS, map[string]any{
			"event":  EVENT_LEVEL_UP,
			"userId": user.ID,
			"level":  status.LevelNumber,
		})
		if _, err := service.serviceAchievement.ProcessAchievements(ctx, user.ID, EVENT_LEVEL_UP); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("level-up achievement processing failed: %v", err))
		}
	}
}

// SpendPoints debits availablePoints only; earnedPoints is a lifetime total
// and never decreases. An insufficient balance reports false without error
// and leaves no trace in the ledger.
func (service *ServicePoints) SpendPoints(ctx context.Context, userID string, points int64, eventType string, metadata map[string]any) (bool, error) {
	if points <= 0 {
		return false, ErrInvalidPoints
	}

	mutex := service.locker.NewMutex(LockKeyUserPoints(userID))
	if err := mutex.TryLock(); err != nil {
		return false, ErrUserLock
	}
	//nolint:errcheck
	defer mutex.Unlock()

	sufficient := false
	err := service.atomic.RunInTx(ctx, func(ctx context.Context) error {
		user, err := service.users.Find(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if user.AvailablePoints < points {
			return nil
		}
		sufficient = true

		user.AvailablePoints -= points
		if err := service.users.Update(ctx, user); err != nil {
			return err
		}

		return service.transactions.Insert(ctx, &models.PointsTransaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			EventType:     eventType,
			Points:        -points,
			Metadata:      metadata,
		})
	})
	if err != nil {
		return false, err
	}
	if !sufficient {
		return false, nil
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(userID))

	//nolint:errcheck
	service.notifier.SendNotification(ctx, CHANNEL_POINTS, map[string]any{
		"event":     EVENT_POINTS_SPENT,
		"userId":    userID,
		"points":    points,
		"eventType": eventType,
	})

	return true, nil
}

// RefundPoints restores previously spent points to availablePoints. Earned
// totals are untouched, so refunds never move ladder or leaderboard state.
func (service *ServicePoints) RefundPoints(ctx context.Context, userID string, points int64, eventType string, metadata map[string]any) error {
	if points <= 0 {
		return ErrInvalidPoints
	}

	mutex := service.locker.NewMutex(LockKeyUserPoints(userID))
	if err := mutex.TryLock(); err != nil {
		return ErrUserLock
	}
	//nolint:errcheck
	defer mutex.Unlock()

	err := service.atomic.RunInTx(ctx, func(ctx context.Context) error {
		user, err := service.users.Find(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		user.AvailablePoints += points
		if err := service.users.Update(ctx, user); err != nil {
			return err
		}

		return service.transactions.Insert(ctx, &models.PointsTransaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			EventType:     eventType,
			Points:        points,
			Metadata:      metadata,
		})
	})
	if err != nil {
		return err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(userID))
	return nil
}

func (service *ServicePoints) GetAvailablePoints(ctx context.Context, userID string) (int64, error) {
	user, err := service.users.Find(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	return user.AvailablePoints, nil
}

func (service *ServicePoints) GetEarnedPoints(ctx context.Context, userID string) (int64, error) {
	user, err := service.users.Find(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	return user.EarnedPoints, nil
}

func (service *ServicePoints) GetTransactionHistory(ctx context.Context, userID string, limit int) ([]models.PointsTransaction, error) {
	if limit <= 0 {
		limit = TRANSACTION_DEFAULT_LIMIT
	}
	return service.transactions.FindByUser(ctx, userID, limit)
}

func (service *ServicePoints) GetTransactionsByType(ctx context.Context, userID string, eventType string) ([]models.PointsTransaction, error) {
	return service.transactions.FindByUserAndType(ctx, userID, eventType)
}

// LedgerBalance re-derives the signed sum of the user's ledger. Used by the
// audit endpoint to cross-check the materialized totals.
func (service *ServicePoints) LedgerBalance(ctx context.Context, userID string) (int64, error) {
	return service.transactions.SumByUser(ctx, userID)
}
