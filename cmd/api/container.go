package main

import (
	"database/sql"
	"os"
	"strconv"

	"gamify/internal/commands"
	"gamify/internal/datastore"
	"gamify/internal/interfaces"
	"gamify/internal/notify"
	"gamify/internal/pkg/caching"
	"gamify/internal/pkg/limiter"
	"gamify/internal/pkg/locking"
	"gamify/internal/services"
	"gamify/internal/strategies"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	vs["API_MODE"] = os.Getenv("API_MODE")
	vs["API_ORIGINS"] = os.Getenv("API_ORIGINS")

	if vs["API_MODE"] == "" {
		vs["API_MODE"] = "production"
	}
	if vs["API_ORIGINS"] == "" {
		vs["API_ORIGINS"] = "*"
	}

	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-db", func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_DB"),
		})
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_CACHE"),
		})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		if os.Getenv("REDIS_CACHE") == "" {
			return caching.NewCacheMemory(), nil
		}

		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Locker, error) {
		if os.Getenv("REDIS_DB") == "" {
			return locking.NewLockerMemory(), nil
		}

		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}

		return locking.NewLockerRedis(dbRedis), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		if os.Getenv("REDIS_DB") == "" {
			return limiter.LimiterNoop{}, nil
		}

		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiterRedis(dbRedis), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Notifier, error) {
		sinks := []interfaces.Notifier{notify.NewNotifierLog()}

		if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
			sinks = append(sinks, notify.NewNotifierWebhook(url))
		}

		if token := os.Getenv("NOTIFY_TELEGRAM_TOKEN"); token != "" {
			chatID, err := strconv.ParseInt(os.Getenv("NOTIFY_TELEGRAM_CHAT_ID"), 10, 64)
			if err != nil {
				return nil, err
			}
			telegram, err := notify.NewNotifierTelegram(token, chatID)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, telegram)
		}

		if len(sinks) == 1 {
			return sinks[0], nil
		}
		return notify.NewNotifierFanout(sinks...), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Atomic, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewAtomicBun(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.UserRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewUserStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.PointsTransactionRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewPointsTransactionStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.LadderLevelRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewLadderLevelStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.LadderStatusRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewLadderStatusStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.LeaderboardRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewLeaderboardStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.AchievementRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewAchievementStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.UserAchievementRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewUserAchievementStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.RewardRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewRewardStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.RedemptionRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewRedemptionStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.TaskEventRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewTaskEventStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.ConfigRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewConfigStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.TaskPointsStrategy, error) {
		if os.Getenv("TASK_POINTS_STRATEGY") == "flat" {
			amount, err := strconv.ParseInt(os.Getenv("FLAT_TASK_POINTS"), 10, 64)
			if err != nil || amount <= 0 {
				amount = strategies.POINTS_PRIORITY_DEFAULT
			}
			return strategies.NewFlatPoints(amount), nil
		}
		return strategies.NewPriorityPoints(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceUser, error) {
		return services.NewServiceUser(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLadder, error) {
		return services.NewServiceLadder(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceAchievement, error) {
		return services.NewServiceAchievement(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServicePoints, error) {
		return services.NewServicePoints(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceReward, error) {
		return services.NewServiceReward(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceRedemption, error) {
		return services.NewServiceRedemption(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceTaskEvent, error) {
		return services.NewServiceTaskEvent(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*commands.Factory, error) {
		serviceTaskEvent, err := do.Invoke[*services.ServiceTaskEvent](i)
		if err != nil {
			return nil, err
		}
		return commands.NewFactory(serviceTaskEvent), nil
	})

	return injector
}
