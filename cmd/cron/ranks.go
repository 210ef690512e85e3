package main

import (
	"context"
	"errors"
	"log"
	"time"

	"gamify/internal/datastore/redis_store"
	"gamify/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
)

// RanksJob refreshes leaderboard ranks on the schedule stored in the config
// table. The recalculation goes through ServiceLeaderboard so the refresh
// lock serializes it against API-triggered runs.
type RanksJob struct {
	container *do.Injector
}

func NewRanksJob(container *do.Injector) *RanksJob {
	return &RanksJob{container: container}
}

func (j *RanksJob) Start(cronRunner *cron.Cron) error {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](j.container)
	if err != nil {
		return err
	}

	schedule := serviceConfig.GetConfigWithDefault(context.Background(), services.CONFIG_CRONJOB_TIME_RANKS, "0 * * * *")

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	if err != nil {
		return err
	}

	log.Println("Ranks cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule)
	j.runScheduledTask()
	return nil
}

func (j *RanksJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start rank recalculation ...")

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](j.container)
	if err != nil {
		log.Println(err)
		return
	}

	updated, err := serviceLeaderboard.CalculateRanks(ctx)
	if errors.Is(err, services.ErrRankRefreshLock) {
		log.Println("Rank recalculation already running, skipping")
		return
	}
	if err != nil {
		log.Println(err)
		return
	}

	log.Println("Rank recalculation done, rows changed:", updated)

	redisDB, err := do.InvokeNamed[redis.UniversalClient](j.container, "redis-db")
	if err != nil || redisDB == nil {
		return
	}
	count, err := redis_store.GetLeaderboardCount(ctx, redisDB)
	if err != nil {
		log.Println(err)
		return
	}
	log.Println("Leaderboard mirror holds", count, "entries")
}
