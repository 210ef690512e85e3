// Package memstore keeps the full data model in process memory. It backs the
// service tests and the embedded configuration where no postgres is
// available. Absent rows surface as sql.ErrNoRows, same as the bun stores.
package memstore

import (
	"context"
	"sync"

	"gamify/internal/models"
)

type Store struct {
	mu sync.RWMutex
	// txMu serializes RunInTx so a snapshot observes no concurrent writes
	txMu sync.Mutex

	users            map[string]models.User
	transactions     []models.PointsTransaction
	levels           map[int64]models.LadderLevel
	statuses         map[string]models.UserLadderStatus
	leaderboard      map[string]models.LeaderboardEntry
	achievements     map[string]models.Achievement
	userAchievements map[string]models.UserAchievement
	rewards          map[string]models.Reward
	redemptions      map[string]models.RewardRedemption
	taskEvents       map[string]models.TaskEvent
	configs          map[string]string
}

func New() *Store {
	return &Store{
		users:            map[string]models.User{},
		levels:           map[int64]models.LadderLevel{},
		statuses:         map[string]models.UserLadderStatus{},
		leaderboard:      map[string]models.LeaderboardEntry{},
		achievements:     map[string]models.Achievement{},
		userAchievements: map[string]models.UserAchievement{},
		rewards:          map[string]models.Reward{},
		redemptions:      map[string]models.RewardRedemption{},
		taskEvents:       map[string]models.TaskEvent{},
		configs:          map[string]string{},
	}
}

type snapshot struct {
	users            map[string]models.User
	transactions     []models.PointsTransaction
	levels           map[int64]models.LadderLevel
	statuses         map[string]models.UserLadderStatus
	leaderboard      map[string]models.LeaderboardEntry
	achievements     map[string]models.Achievement
	userAchievements map[string]models.UserAchievement
	rewards          map[string]models.Reward
	redemptions      map[string]models.RewardRedemption
	taskEvents       map[string]models.TaskEvent
	configs          map[string]string
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		users:            copyMap(s.users),
		transactions:     append([]models.PointsTransaction(nil), s.transactions...),
		levels:           copyMap(s.levels),
		statuses:         copyMap(s.statuses),
		leaderboard:      copyMap(s.leaderboard),
		achievements:     copyMap(s.achievements),
		userAchievements: copyMap(s.userAchievements),
		rewards:          copyMap(s.rewards),
		redemptions:      copyMap(s.redemptions),
		taskEvents:       copyMap(s.taskEvents),
		configs:          copyMap(s.configs),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.transactions = snap.transactions
	s.levels = snap.levels
	s.statuses = snap.statuses
	s.leaderboard = snap.leaderboard
	s.achievements = snap.achievements
	s.userAchievements = snap.userAchievements
	s.rewards = snap.rewards
	s.redemptions = snap.redemptions
	s.taskEvents = snap.taskEvents
	s.configs = snap.configs
}

type ctxKeyTx struct{}

// RunInTx takes a snapshot before fn and restores it when fn fails.
// Transactions run one at a time; a nested call joins the open one instead
// of snapshotting again, matching the bun implementation.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(ctxKeyTx{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, ctxKeyTx{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func userAchievementKey(userID, achievementID string) string {
	return userID + "|" + achievementID
}
