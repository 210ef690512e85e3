package main

import (
	"database/sql"
	"log"
	"os"

	"gamify/internal/datastore"
	"gamify/internal/interfaces"
	"gamify/internal/pkg/caching"
	"gamify/internal/pkg/locking"
	"gamify/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			container := NewContainer()
			//nolint:errcheck
			defer container.Shutdown()

			cronRunner := cron.New()

			ranksJob := NewRanksJob(container)
			if err := ranksJob.Start(cronRunner); err != nil {
				return err
			}
			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

// NewContainer wires just enough of the service graph for the scheduled
// jobs: the leaderboard service and its dependencies.
func NewContainer() *do.Injector {
	injector := do.New()

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

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		if os.Getenv("REDIS_CACHE") == "" {
			return caching.NewCacheMemory(), nil
		}

		dbRedis, err := db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_CACHE"),
		})
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

	do.Provide(injector, func(i *do.Injector) (interfaces.UserRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewUserStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.LeaderboardRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewLeaderboardStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.ConfigRepository, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return datastore.NewConfigStore(bunDB), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceUser, error) {
		return services.NewServiceUser(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(injector)
	})

	return injector
}
