package interfaces

import (
	"context"
	"time"

	"gamify/internal/models"
)

// Repositories return sql.ErrNoRows for absent rows regardless of backend.

type UserRepository interface {
	Find(ctx context.Context, userID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type PointsTransactionRepository interface {
	Insert(ctx context.Context, tx *models.PointsTransaction) error
	FindByUser(ctx context.Context, userID string, limit int) ([]models.PointsTransaction, error)
	FindByUserAndType(ctx context.Context, userID string, eventType string) ([]models.PointsTransaction, error)
	SumByUser(ctx context.Context, userID string) (int64, error)
}

type LadderLevelRepository interface {
	FindAll(ctx context.Context) ([]models.LadderLevel, error)
	Find(ctx context.Context, level int64) (*models.LadderLevel, error)
	Insert(ctx context.Context, level *models.LadderLevel) error
	Update(ctx context.Context, level *models.LadderLevel) error
	Delete(ctx context.Context, level int64) error
	Count(ctx context.Context) (int64, error)
}

type LadderStatusRepository interface {
	Find(ctx context.Context, userID string) (*models.UserLadderStatus, error)
	Upsert(ctx context.Context, status *models.UserLadderStatus) error
	CountByLevel(ctx context.Context, level int64) (int64, error)
}

type LeaderboardRepository interface {
	Find(ctx context.Context, userID string) (*models.LeaderboardEntry, error)
	FindPage(ctx context.Context, offset, limit int) ([]models.LeaderboardEntry, error)
	FindPageByDepartment(ctx context.Context, department string, offset, limit int) ([]models.LeaderboardEntry, error)
	FindAll(ctx context.Context) ([]models.LeaderboardEntry, error)
	Count(ctx context.Context) (int64, error)
	CountByDepartment(ctx context.Context, department string) (int64, error)
	Insert(ctx context.Context, entry *models.LeaderboardEntry) error
	Update(ctx context.Context, entry *models.LeaderboardEntry) error
}

type AchievementRepository interface {
	Find(ctx context.Context, achievementID string) (*models.Achievement, error)
	FindByName(ctx context.Context, name string) (*models.Achievement, error)
	FindAll(ctx context.Context) ([]models.Achievement, error)
	Insert(ctx context.Context, a *models.Achievement) error
	Update(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, achievementID string) error
}

type UserAchievementRepository interface {
	Find(ctx context.Context, userID, achievementID string) (*models.UserAchievement, error)
	FindByUser(ctx context.Context, userID string) ([]models.UserAchievement, error)
	CountByAchievement(ctx context.Context, achievementID string) (int64, error)
	Insert(ctx context.Context, ua *models.UserAchievement) error
}

type RewardRepository interface {
	Find(ctx context.Context, rewardID string) (*models.Reward, error)
	FindAll(ctx context.Context) ([]models.Reward, error)
	Insert(ctx context.Context, r *models.Reward) error
	Update(ctx context.Context, r *models.Reward) error
}

type RedemptionRepository interface {
	Find(ctx context.Context, redemptionID string) (*models.RewardRedemption, error)
	FindByUser(ctx context.Context, userID string) ([]models.RewardRedemption, error)
	Insert(ctx context.Context, r *models.RewardRedemption) error
	Update(ctx context.Context, r *models.RewardRedemption) error
}

type TaskEventRepository interface {
	Find(ctx context.Context, eventID string) (*models.TaskEvent, error)
	FindByUser(ctx context.Context, userID string) ([]models.TaskEvent, error)
	CountCompletedByUser(ctx context.Context, userID string) (int64, error)
	Insert(ctx context.Context, e *models.TaskEvent) error
}

type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Notifier delivers fire-and-forget notifications on a named channel.
// Implementations must not block the caller beyond the context deadline.
type Notifier interface {
	SendNotification(ctx context.Context, channel string, payload map[string]any) error
}

// TaskPointsStrategy decides how many points a completed task is worth.
type TaskPointsStrategy interface {
	CalculatePoints(event *models.TaskEvent) int64
}

// Mutex matches the redsync mutex surface so in-process locks can stand in
// for redis ones under test.
type Mutex interface {
	TryLock() error
	Unlock() (bool, error)
}

type Locker interface {
	NewMutex(name string) Mutex
}

// Atomic runs fn inside a storage transaction. Repositories invoked with the
// ctx passed to fn operate on the transaction; an error from fn rolls back.
type Atomic interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Limiter interface {
	Allow(ctx context.Context, key string, n int, period time.Duration) (bool, error)
}

// PointsLedger is the narrow ledger surface the task event and redemption
// flows depend on.
type PointsLedger interface {
	AwardPoints(ctx context.Context, userID string, points int64, eventType string, metadata map[string]any) (*models.AwardResult, error)
	SpendPoints(ctx context.Context, userID string, points int64, eventType string, metadata map[string]any) (bool, error)
	RefundPoints(ctx context.Context, userID string, points int64, eventType string, metadata map[string]any) error
	GetAvailablePoints(ctx context.Context, userID string) (int64, error)
}

// AchievementProcessor evaluates every achievement against a user event.
// Returns the achievements newly awarded by this call.
type AchievementProcessor interface {
	ProcessAchievements(ctx context.Context, userID string, eventType string) ([]models.Achievement, error)
}
