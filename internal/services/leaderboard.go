package services

import (
	"context"
	"database/sql"
	"errors"

	"gamify/internal/datastore/redis_store"
	"gamify/internal/interfaces"
	"gamify/internal/models"
	"gamify/internal/pkg/caching"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

type ServiceLeaderboard struct {
	container *do.Injector
	entries   interfaces.LeaderboardRepository
	cache     caching.Cache
	locker    interfaces.Locker
	redisDB   redis.UniversalClient

	serviceUser   *ServiceUser
	serviceConfig *ServiceConfig
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	entries, err := do.Invoke[interfaces.LeaderboardRepository](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	locker, err := do.Invoke[interfaces.Locker](container)
	if err != nil {
		return nil, err
	}

	// the redis mirror is optional, reads fall back to postgres without it
	redisDB, _ := do.InvokeNamed[redis.UniversalClient](container, "redis-db")

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, entries, cache, locker, redisDB, serviceUser, serviceConfig}, nil
}

// CreateEntry registers a user on the board with a provisional rank at the
// bottom. Calling it again for the same user is a no-op.
func (service *ServiceLeaderboard) CreateEntry(ctx context.Context, userID string) (*models.LeaderboardEntry, error) {
	existing, err := service.entries.Find(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user, err := service.serviceUser.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := service.entries.Count(ctx)
	if err != nil {
		return nil, err
	}

	entry := &models.LeaderboardEntry{
		UserID:       user.ID,
		Username:     user.Username,
		Department:   user.Department,
		EarnedPoints: user.EarnedPoints,
		LevelNumber:  DEFAULT_LEVEL_NUMBER,
		Rank:         count + 1,
	}
	if err := service.entries.Insert(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// SyncEntry pushes a user's fresh totals onto the board. Ranks stay stale
// until the next CalculateRanks pass.
func (service *ServiceLeaderboard) SyncEntry(ctx context.Context, userID string, earnedPoints int64, levelNumber int64) error {
	entry, err := service.CreateEntry(ctx, userID)
	if err != nil {
		return err
	}

	entry.EarnedPoints = earnedPoints
	if levelNumber > 0 {
		entry.LevelNumber = levelNumber
	}
	if err := service.entries.Update(ctx, entry); err != nil {
		return err
	}

	if service.redisDB != nil {
		//nolint:errcheck
		redis_store.SetLeaderboardScore(ctx, service.redisDB, userID, earnedPoints)
		//nolint:errcheck
		redis_store.SetLeaderboardEntry(ctx, service.redisDB, entry, CACHE_TTL_1_MIN)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyLeaderboardUser(userID))
	return nil
}

// CalculateRanks recomputes every rank in one pass. Entries sort by points
// descending; equal points share a rank and the next group jumps past the
// tied block. Only rows whose rank moved are written back. Returns how many
// rows changed.
func (service *ServiceLeaderboard) CalculateRanks(ctx context.Context) (int, error) {
	mutex := service.locker.NewMutex(LockKeyRankRefresh())
	if err := mutex.TryLock(); err != nil {
		return 0, ErrRankRefreshLock
	}
	//nolint:errcheck
	defer mutex.Unlock()

	entries, err := service.entries.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	rank := int64(1)
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].EarnedPoints == entries[i].EarnedPoints {
			j++
		}
		for k := i; k < j; k++ {
			if entries[k].Rank != rank {
				entries[k].Rank = rank
				if err := service.entries.Update(ctx, &entries[k]); err != nil {
					return updated, err
				}
				updated++
			}
		}
		rank += int64(j - i)
		i = j
	}

	if service.redisDB != nil {
		service.rebuildMirror(ctx, entries)
	}

	return updated, nil
}

func (service *ServiceLeaderboard) rebuildMirror(ctx context.Context, entries []models.LeaderboardEntry) {
	//nolint:errcheck
	redis_store.ClearLeaderboard(ctx, service.redisDB)
	for i := range entries {
		//nolint:errcheck
		redis_store.SetLeaderboardScore(ctx, service.redisDB, entries[i].UserID, entries[i].EarnedPoints)
		//nolint:errcheck
		redis_store.SetLeaderboardEntry(ctx, service.redisDB, &entries[i], CACHE_TTL_1_MIN)
	}
}

func (service *ServiceLeaderboard) GetPage(ctx context.Context, page, size int) (*models.LeaderboardPage, error) {
	if size <= 0 {
		size, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_PAGE_SIZE, LEADERBOARD_DEFAULT_PAGE_SIZE)
	}
	if page <= 0 {
		page = 1
	}

	return caching.UseCache(ctx, service.cache, DBKeyLeaderboardPage(page, size), CACHE_TTL_5_SECONDS, func() (*models.LeaderboardPage, error) {
		entries, err := service.entries.FindPage(ctx, (page-1)*size, size)
		if err != nil {
			return nil, err
		}

		total, err := service.entries.Count(ctx)
		if err != nil {
			return nil, err
		}

		return &models.LeaderboardPage{
			Entries: entries,
			Page:    page,
			Size:    size,
			Total:   total,
		}, nil
	})
}

func (service *ServiceLeaderboard) GetDepartmentPage(ctx context.Context, department string, page, size int) (*models.LeaderboardPage, error) {
	if size <= 0 {
		size, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_PAGE_SIZE, LEADERBOARD_DEFAULT_PAGE_SIZE)
	}
	if page <= 0 {
		page = 1
	}

	return caching.UseCache(ctx, service.cache, DBKeyLeaderboardDepartmentPage(department, page, size), CACHE_TTL_5_SECONDS, func() (*models.LeaderboardPage, error) {
		entries, err := service.entries.FindPageByDepartment(ctx, department, (page-1)*size, size)
		if err != nil {
			return nil, err
		}

		total, err := service.entries.CountByDepartment(ctx, department)
		if err != nil {
			return nil, err
		}

		return &models.LeaderboardPage{
			Entries: entries,
			Page:    page,
			Size:    size,
			Total:   total,
		}, nil
	})
}

// GetUserEntry reads a single board row, preferring the msgpack mirror so
// the hot per-user lookup skips postgres.
func (service *ServiceLeaderboard) GetUserEntry(ctx context.Context, userID string) (*models.LeaderboardEntry, error) {
	return caching.UseCache(ctx, service.cache, DBKeyLeaderboardUser(userID), CACHE_TTL_5_SECONDS, func() (*models.LeaderboardEntry, error) {
		if service.redisDB != nil {
			if entry, err := redis_store.GetLeaderboardEntry(ctx, service.redisDB, userID); err == nil {
				return entry, nil
			}
		}

		entry, err := service.entries.Find(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}

		if service.redisDB != nil {
			//nolint:errcheck
			redis_store.SetLeaderboardEntry(ctx, service.redisDB, entry, CACHE_TTL_1_MIN)
		}
		return entry, nil
	})
}

// GetTop serves the podium from the redis mirror when available, postgres
// otherwise.
func (service *ServiceLeaderboard) GetTop(ctx context.Context, limit int) ([]*models.LeaderboardItem, error) {
	if limit <= 0 {
		limit, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_TOP_LIMIT, LEADERBOARD_DEFAULT_TOP_LIMIT)
	}

	if service.redisDB != nil {
		items, err := redis_store.GetTopLeaderboard(ctx, service.redisDB, limit)
		if err == nil && len(items) > 0 {
			return items, nil
		}
	}

	entries, err := service.entries.FindPage(ctx, 0, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LeaderboardItem, 0, len(entries))
	for i := range entries {
		items = append(items, &models.LeaderboardItem{
			UserID: entries[i].UserID,
			Points: entries[i].EarnedPoints,
			Rank:   entries[i].Rank,
		})
	}

	return items, nil
}
