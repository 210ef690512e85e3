package limiter

import (
	"context"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// LimiterRedis enforces per-key request rates with a redis sliding window.
type LimiterRedis struct {
	limiter *redis_rate.Limiter
}

func NewLimiterRedis(client redis.UniversalClient) *LimiterRedis {
	return &LimiterRedis{limiter: redis_rate.NewLimiter(client)}
}

func (l *LimiterRedis) Allow(ctx context.Context, key string, n int, period time.Duration) (bool, error) {
	res, err := l.limiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   n,
		Burst:  n,
		Period: period,
	})
	if err != nil {
		return false, err
	}
	return res.Allowed > 0, nil
}

// LimiterNoop allows everything. Used when no redis is configured.
type LimiterNoop struct{}

func (LimiterNoop) Allow(ctx context.Context, key string, n int, period time.Duration) (bool, error) {
	return true, nil
}
