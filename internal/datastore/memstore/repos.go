package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"gamify/internal/models"
)

// Users

type userRepo struct{ s *Store }

func (s *Store) Users() *userRepo { return &userRepo{s} }

func (r *userRepo) Find(ctx context.Context, userID string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userRepo) Insert(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return fmt.Errorf("user %s already exists", user.ID)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
		user.UpdatedAt = user.CreatedAt
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

// Points transactions

type transactionRepo struct{ s *Store }

func (s *Store) Transactions() *transactionRepo { return &transactionRepo{s} }

func (r *transactionRepo) Insert(ctx context.Context, tx *models.PointsTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	r.s.transactions = append(r.s.transactions, *tx)
	return nil
}

func (r *transactionRepo) FindByUser(ctx context.Context, userID string, limit int) ([]models.PointsTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var txs []models.PointsTransaction
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		if r.s.transactions[i].UserID == userID {
			txs = append(txs, r.s.transactions[i])
			if limit > 0 && len(txs) == limit {
				break
			}
		}
	}
	return txs, nil
}

func (r *transactionRepo) FindByUserAndType(ctx context.Context, userID string, eventType string) ([]models.PointsTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var txs []models.PointsTransaction
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		tx := r.s.transactions[i]
		if tx.UserID == userID && tx.EventType == eventType {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (r *transactionRepo) SumByUser(ctx context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var sum int64
	for _, tx := range r.s.transactions {
		if tx.UserID == userID {
			sum += tx.Points
		}
	}
	return sum, nil
}

// Ladder levels

type ladderLevelRepo struct{ s *Store }

func (s *Store) LadderLevels() *ladderLevelRepo { return &ladderLevelRepo{s} }

func (r *ladderLevelRepo) FindAll(ctx context.Context) ([]models.LadderLevel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	levels := make([]models.LadderLevel, 0, len(r.s.levels))
	for _, l := range r.s.levels {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
	return levels, nil
}

func (r *ladderLevelRepo) Find(ctx context.Context, level int64) (*models.LadderLevel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.levels[level]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &l, nil
}

func (r *ladderLevelRepo) Insert(ctx context.Context, level *models.LadderLevel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.levels[level.Level]; ok {
		return fmt.Errorf("ladder level %d already exists", level.Level)
	}
	if level.CreatedAt.IsZero() {
		level.CreatedAt = time.Now()
	}
	r.s.levels[level.Level] = *level
	return nil
}

func (r *ladderLevelRepo) Update(ctx context.Context, level *models.LadderLevel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.levels[level.Level]; !ok {
		return sql.ErrNoRows
	}
	r.s.levels[level.Level] = *level
	return nil
}

func (r *ladderLevelRepo) Delete(ctx context.Context, level int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.levels, level)
	return nil
}

func (r *ladderLevelRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.levels)), nil
}

// Ladder statuses

type ladderStatusRepo struct{ s *Store }

func (s *Store) LadderStatuses() *ladderStatusRepo { return &ladderStatusRepo{s} }

func (r *ladderStatusRepo) Find(ctx context.Context, userID string) (*models.UserLadderStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.statuses[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &st, nil
}

func (r *ladderStatusRepo) Upsert(ctx context.Context, status *models.UserLadderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	status.UpdatedAt = time.Now()
	r.s.statuses[status.UserID] = *status
	return nil
}

func (r *ladderStatusRepo) CountByLevel(ctx context.Context, level int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, st := range r.s.statuses {
		if st.LevelNumber == level {
			count++
		}
	}
	return count, nil
}

// Leaderboard

type leaderboardRepo struct{ s *Store }

func (s *Store) Leaderboard() *leaderboardRepo { return &leaderboardRepo{s} }

func (r *leaderboardRepo) Find(ctx context.Context, userID string) (*models.LeaderboardEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.leaderboard[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r *leaderboardRepo) FindPage(ctx context.Context, offset, limit int) ([]models.LeaderboardEntry, error) {
	entries, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank < entries[j].Rank
		}
		return entries[i].UserID < entries[j].UserID
	})
	if offset >= len(entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], nil
}

func (r *leaderboardRepo) FindPageByDepartment(ctx context.Context, department string, offset, limit int) ([]models.LeaderboardEntry, error) {
	entries, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rank != entries[j].Rank {
			return entries[i].Rank < entries[j].Rank
		}
		return entries[i].UserID < entries[j].UserID
	})
	filtered := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.Department == department {
			filtered = append(filtered, e)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (r *leaderboardRepo) FindAll(ctx context.Context) ([]models.LeaderboardEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entries := make([]models.LeaderboardEntry, 0, len(r.s.leaderboard))
	for _, e := range r.s.leaderboard {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EarnedPoints != entries[j].EarnedPoints {
			return entries[i].EarnedPoints > entries[j].EarnedPoints
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries, nil
}

func (r *leaderboardRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.leaderboard)), nil
}

func (r *leaderboardRepo) CountByDepartment(ctx context.Context, department string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, e := range r.s.leaderboard {
		if e.Department == department {
			count++
		}
	}
	return count, nil
}

func (r *leaderboardRepo) Insert(ctx context.Context, entry *models.LeaderboardEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leaderboard[entry.UserID]; ok {
		return fmt.Errorf("leaderboard entry for %s already exists", entry.UserID)
	}
	entry.UpdatedAt = time.Now()
	r.s.leaderboard[entry.UserID] = *entry
	return nil
}

func (r *leaderboardRepo) Update(ctx context.Context, entry *models.LeaderboardEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leaderboard[entry.UserID]; !ok {
		return sql.ErrNoRows
	}
	entry.UpdatedAt = time.Now()
	r.s.leaderboard[entry.UserID] = *entry
	return nil
}

// Achievements

type achievementRepo struct{ s *Store }

func (s *Store) Achievements() *achievementRepo { return &achievementRepo{s} }

func (r *achievementRepo) Find(ctx context.Context, achievementID string) (*models.Achievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.achievements[achievementID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r *achievementRepo) FindByName(ctx context.Context, name string) (*models.Achievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.achievements {
		if a.Name == name {
			a := a
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *achievementRepo) FindAll(ctx context.Context) ([]models.Achievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	as := make([]models.Achievement, 0, len(r.s.achievements))
	for _, a := range r.s.achievements {
		as = append(as, a)
	}
	sort.Slice(as, func(i, j int) bool { return as[i].CreatedAt.Before(as[j].CreatedAt) })
	return as, nil
}

func (r *achievementRepo) Insert(ctx context.Context, a *models.Achievement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.achievements[a.AchievementID]; ok {
		return fmt.Errorf("achievement %s already exists", a.AchievementID)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.s.achievements[a.AchievementID] = *a
	return nil
}

func (r *achievementRepo) Update(ctx context.Context, a *models.Achievement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.achievements[a.AchievementID]; !ok {
		return sql.ErrNoRows
	}
	r.s.achievements[a.AchievementID] = *a
	return nil
}

func (r *achievementRepo) Delete(ctx context.Context, achievementID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.achievements, achievementID)
	return nil
}

// User achievements

type userAchievementRepo struct{ s *Store }

func (s *Store) UserAchievements() *userAchievementRepo { return &userAchievementRepo{s} }

func (r *userAchievementRepo) Find(ctx context.Context, userID, achievementID string) (*models.UserAchievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ua, ok := r.s.userAchievements[userAchievementKey(userID, achievementID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &ua, nil
}

func (r *userAchievementRepo) FindByUser(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var uas []models.UserAchievement
	for _, ua := range r.s.userAchievements {
		if ua.UserID == userID {
			uas = append(uas, ua)
		}
	}
	sort.Slice(uas, func(i, j int) bool { return uas[i].EarnedAt.After(uas[j].EarnedAt) })
	return uas, nil
}

func (r *userAchievementRepo) CountByAchievement(ctx context.Context, achievementID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, ua := range r.s.userAchievements {
		if ua.AchievementID == achievementID {
			count++
		}
	}
	return count, nil
}

func (r *userAchievementRepo) Insert(ctx context.Context, ua *models.UserAchievement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := userAchievementKey(ua.UserID, ua.AchievementID)
	if _, ok := r.s.userAchievements[key]; ok {
		return fmt.Errorf("user %s already has achievement %s", ua.UserID, ua.AchievementID)
	}
	if ua.EarnedAt.IsZero() {
		ua.EarnedAt = time.Now()
	}
	r.s.userAchievements[key] = *ua
	return nil
}

// Rewards

type rewardRepo struct{ s *Store }

func (s *Store) Rewards() *rewardRepo { return &rewardRepo{s} }

func (r *rewardRepo) Find(ctx context.Context, rewardID string) (*models.Reward, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rw, ok := r.s.rewards[rewardID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &rw, nil
}

func (r *rewardRepo) FindAll(ctx context.Context) ([]models.Reward, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rws := make([]models.Reward, 0, len(r.s.rewards))
	for _, rw := range r.s.rewards {
		rws = append(rws, rw)
	}
	sort.Slice(rws, func(i, j int) bool { return rws[i].CostInPoints < rws[j].CostInPoints })
	return rws, nil
}

func (r *rewardRepo) Insert(ctx context.Context, rw *models.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rewards[rw.RewardID]; ok {
		return fmt.Errorf("reward %s already exists", rw.RewardID)
	}
	if rw.CreatedAt.IsZero() {
		rw.CreatedAt = time.Now()
		rw.UpdatedAt = rw.CreatedAt
	}
	r.s.rewards[rw.RewardID] = *rw
	return nil
}

func (r *rewardRepo) Update(ctx context.Context, rw *models.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rewards[rw.RewardID]; !ok {
		return sql.ErrNoRows
	}
	rw.UpdatedAt = time.Now()
	r.s.rewards[rw.RewardID] = *rw
	return nil
}

// Redemptions

type redemptionRepo struct{ s *Store }

func (s *Store) Redemptions() *redemptionRepo { return &redemptionRepo{s} }

func (r *redemptionRepo) Find(ctx context.Context, redemptionID string) (*models.RewardRedemption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rd, ok := r.s.redemptions[redemptionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &rd, nil
}

func (r *redemptionRepo) FindByUser(ctx context.Context, userID string) ([]models.RewardRedemption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rds []models.RewardRedemption
	for _, rd := range r.s.redemptions {
		if rd.UserID == userID {
			rds = append(rds, rd)
		}
	}
	sort.Slice(rds, func(i, j int) bool { return rds[i].CreatedAt.After(rds[j].CreatedAt) })
	return rds, nil
}

func (r *redemptionRepo) Insert(ctx context.Context, rd *models.RewardRedemption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.redemptions[rd.RedemptionID]; ok {
		return fmt.Errorf("redemption %s already exists", rd.RedemptionID)
	}
	if rd.CreatedAt.IsZero() {
		rd.CreatedAt = time.Now()
		rd.UpdatedAt = rd.CreatedAt
	}
	r.s.redemptions[rd.RedemptionID] = *rd
	return nil
}

func (r *redemptionRepo) Update(ctx context.Context, rd *models.RewardRedemption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.redemptions[rd.RedemptionID]; !ok {
		return sql.ErrNoRows
	}
	rd.UpdatedAt = time.Now()
	r.s.redemptions[rd.RedemptionID] = *rd
	return nil
}

// Task events

type taskEventRepo struct{ s *Store }

func (s *Store) TaskEvents() *taskEventRepo { return &taskEventRepo{s} }

func (r *taskEventRepo) Find(ctx context.Context, eventID string) (*models.TaskEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.taskEvents[eventID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (r *taskEventRepo) FindByUser(ctx context.Context, userID string) ([]models.TaskEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var es []models.TaskEvent
	for _, e := range r.s.taskEvents {
		if e.UserID == userID {
			es = append(es, e)
		}
	}
	sort.Slice(es, func(i, j int) bool { return es[i].CreatedAt.After(es[j].CreatedAt) })
	return es, nil
}

func (r *taskEventRepo) CountCompletedByUser(ctx context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, e := range r.s.taskEvents {
		if e.UserID == userID && e.Status == models.TaskCompleted {
			count++
		}
	}
	return count, nil
}

func (r *taskEventRepo) Insert(ctx context.Context, e *models.TaskEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.taskEvents[e.EventID]; ok {
		return fmt.Errorf("task event %s already exists", e.EventID)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.s.taskEvents[e.EventID] = *e
	return nil
}

// Config

type configRepo struct{ s *Store }

func (s *Store) Configs() *configRepo { return &configRepo{s} }

func (r *configRepo) Get(ctx context.Context, key string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.configs[key]
	if !ok {
		return "", sql.ErrNoRows
	}
	return v, nil
}

func (r *configRepo) Set(ctx context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.configs[key] = value
	return nil
}
