package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/states"

	"github.com/google/uuid"
	"github.com/samber/do"
)

// ServiceRedemption drives the redeem lifecycle: checks, debit, record,
// settle. The debit rides the ledger through ServicePoints so a redemption
// is always visible in transaction history.
type ServiceRedemption struct {
	container   *do.Injector
	redemptions interfaces.RedemptionRepository
	atomic      interfaces.Atomic
	locker      interfaces.Locker
	notifier    interfaces.Notifier

	serviceUser   *ServiceUser
	serviceReward *ServiceReward
	servicePoints interfaces.PointsLedger
}

func NewServiceRedemption(container *do.Injector) (*ServiceRedemption, error) {
	redemptions, err := do.Invoke[interfaces.RedemptionRepository](container)
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

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	serviceReward, err := do.Invoke[*ServiceReward](container)
	if err != nil {
		return nil, err
	}

	servicePoints, err := do.Invoke[*ServicePoints](container)
	if err != nil {
		return nil, err
	}

	return &ServiceRedemption{container, redemptions, atomic, locker, notifier, serviceUser, serviceReward, servicePoints}, nil
}

// errBalanceMoved aborts the redemption transaction when the debit loses a
// race with a concurrent spend. It never leaves the service.
var errBalanceMoved = errors.New("balance moved during redemption")

func failure(message string, balance int64) *models.RedemptionResult {
	return &models.RedemptionResult{
		Success:              false,
		Message:              message,
		UpdatedPointsBalance: balance,
		Timestamp:            time.Now(),
	}
}

// RedeemReward attempts to exchange available points for a reward. Checks
// run in order: user, reward, availability, balance. Any failed check
// reports a result with Success=false rather than an error; errors are
// reserved for infrastructure faults.
func (service *ServiceRedemption) RedeemReward(ctx context.Context, userID, rewardID string) (*models.RedemptionResult, error) {
	mutex := service.locker.NewMutex(LockKeyUserRedemption(userID))
	if err := mutex.TryLock(); err != nil {
		return nil, ErrUserLock
	}
	//nolint:errcheck
	defer mutex.Unlock()

	user, err := service.serviceUser.FindUserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return failure(fmt.Sprintf("user %s not found", userID), 0), nil
	}
	if err != nil {
		return nil, err
	}

	reward, err := service.serviceReward.GetReward(ctx, rewardID)
	if errors.Is(err, ErrRewardNotFound) {
		return failure(fmt.Sprintf("reward %s not found", rewardID), user.AvailablePoints), nil
	}
	if err != nil {
		return nil, err
	}

	if !reward.Available {
		return failure(fmt.Sprintf("reward %q is not available", reward.Name), user.AvailablePoints), nil
	}

	if user.AvailablePoints < reward.CostInPoints {
		return failure(
			fmt.Sprintf("insufficient points: need %d, have %d", reward.CostInPoints, user.AvailablePoints),
			user.AvailablePoints,
		), nil
	}

	redemption := &models.RewardRedemption{
		RedemptionID: uuid.NewString(),
		UserID:       userID,
		RewardID:     rewardID,
		PointsSpent:  reward.CostInPoints,
		Status:       models.RedemptionProcessing,
	}

	// record and debit stand or fall together: a failed debit must not
	// leave a PROCESSING row behind
	err = service.atomic.RunInTx(ctx, func(ctx context.Context) error {
		if err := service.redemptions.Insert(ctx, redemption); err != nil {
			return err
		}

		ok, err := service.servicePoints.SpendPoints(ctx, userID, reward.CostInPoints, EVENT_REWARD_REDEMPTION, map[string]any{
			"redemptionId": redemption.RedemptionID,
			"rewardId":     reward.RewardID,
			"rewardName":   reward.Name,
		})
		if err != nil {
			return err
		}
		if !ok {
			return errBalanceMoved
		}
		return nil
	})
	if errors.Is(err, errBalanceMoved) {
		return failure("insufficient points", user.AvailablePoints), nil
	}
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.notifier.SendNotification(ctx, CHANNEL_REDEMPTIONS, map[string]any{
		"event":        EVENT_REWARD_REDEMPTION,
		"userId":       userID,
		"rewardId":     rewardID,
		"rewardName":   reward.Name,
		"redemptionId": redemption.RedemptionID,
		"pointsSpent":  reward.CostInPoints,
	})

	return &models.RedemptionResult{
		Success:              true,
		Message:              fmt.Sprintf("redeemed %q for %d points", reward.Name, reward.CostInPoints),
		RedemptionID:         redemption.RedemptionID,
		UpdatedPointsBalance: user.AvailablePoints - reward.CostInPoints,
		Timestamp:            time.Now(),
	}, nil
}

// CompleteRedemption settles a processing redemption. Terminal redemptions
// reject the transition.
func (service *ServiceRedemption) CompleteRedemption(ctx context.Context, redemptionID string) (*models.RewardRedemption, error) {
	return service.transition(ctx, redemptionID, models.RedemptionCompleted)
}

// CancelRedemption voids a processing redemption and refunds the spent
// points to availablePoints. Lifetime earned totals stay as they were.
func (service *ServiceRedemption) CancelRedemption(ctx context.Context, redemptionID string) (*models.RewardRedemption, error) {
	redemption, err := service.transition(ctx, redemptionID, models.RedemptionCancelled)
	if err != nil {
		return nil, err
	}

	err = service.servicePoints.RefundPoints(ctx, redemption.UserID, redemption.PointsSpent, EVENT_REDEMPTION_REFUND, map[string]any{
		"redemptionId": redemption.RedemptionID,
		"rewardId":     redemption.RewardID,
	})
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.notifier.SendNotification(ctx, CHANNEL_REDEMPTIONS, map[string]any{
		"event":          EVENT_REDEMPTION_REFUND,
		"userId":         redemption.UserID,
		"redemptionId":   redemption.RedemptionID,
		"pointsRefunded": redemption.PointsSpent,
	})

	return redemption, nil
}

func (service *ServiceRedemption) transition(ctx context.Context, redemptionID string, to models.RedemptionStatus) (*models.RewardRedemption, error) {
	redemption, err := service.redemptions.Find(ctx, redemptionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("redemption %s not found", redemptionID)
	}
	if err != nil {
		return nil, err
	}

	state, err := states.ForStatus(redemption.Status)
	if err != nil {
		return nil, err
	}
	next, err := state.Transition(to)
	if err != nil {
		return nil, err
	}

	redemption.Status = next.Status()
	if err := service.redemptions.Update(ctx, redemption); err != nil {
		return nil, err
	}

	return redemption, nil
}

func (service *ServiceRedemption) GetRedemption(ctx context.Context, redemptionID string) (*models.RewardRedemption, error) {
	redemption, err := service.redemptions.Find(ctx, redemptionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("redemption %s not found", redemptionID)
	}
	return redemption, err
}

func (service *ServiceRedemption) GetUserRedemptions(ctx context.Context, userID string) ([]models.RewardRedemption, error) {
	return service.redemptions.FindByUser(ctx, userID)
}
