// Package redis_store mirrors the hot leaderboard slice into redis so reads
// never touch postgres. The sorted set is rebuilt by the rank refresh job;
// postgres stays the source of truth.
package redis_store

import (
	"context"
	"fmt"
	"time"

	"gamify/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

func dbKeyLeaderboard() string {
	return "leaderboard:points"
}

func dbKeyLeaderboardEntry(userID string) string {
	return fmt.Sprintf("leaderboard:entry:%s", userID)
}

func SetLeaderboardScore(ctx context.Context, cmd redis.Cmdable, userID string, points int64) error {
	return cmd.ZAdd(ctx, dbKeyLeaderboard(), redis.Z{
		Score:  float64(points),
		Member: userID,
	}).Err()
}

func ClearLeaderboard(ctx context.Context, cmd redis.Cmdable) error {
	return cmd.Del(ctx, dbKeyLeaderboard()).Err()
}

func GetTopLeaderboard(ctx context.Context, cmd redis.Cmdable, num int) ([]*models.LeaderboardItem, error) {
	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	var results []*models.LeaderboardItem
	for i, item := range items {
		results = append(results, &models.LeaderboardItem{
			UserID: item.Member.(string),
			Points: int64(item.Score),
			Rank:   int64(i + 1),
		})
	}

	return results, nil
}

func GetLeaderboardCount(ctx context.Context, cmd redis.Cmdable) (int64, error) {
	count, err := cmd.ZCard(ctx, dbKeyLeaderboard()).Result()
	if err != nil {
		return 0, err
	}

	return count, nil
}

func SetLeaderboardEntry(ctx context.Context, cmd redis.Cmdable, entry *models.LeaderboardEntry, ttl time.Duration) error {
	b, err := msgpack.Marshal(entry)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyLeaderboardEntry(entry.UserID), b, ttl).Err()
}

func GetLeaderboardEntry(ctx context.Context, cmd redis.Cmdable, userID string) (*models.LeaderboardEntry, error) {
	var v *models.LeaderboardEntry
	b, err := cmd.Get(ctx, dbKeyLeaderboardEntry(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}
