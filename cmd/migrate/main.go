package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	"gamify/internal/datastore"
	"gamify/internal/models"
	"gamify/internal/services"
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
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandLadderMigration(),
			commandCatalogMigration(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePointsTransaction(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLadder(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLeaderboard(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAchievement(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableTaskEvent(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SERVER_MODE, Value: "production"},
				{Key: services.CONFIG_LEADERBOARD_PAGE_SIZE, Value: "20"},
				{Key: services.CONFIG_LEADERBOARD_TOP_LIMIT, Value: "10"},
				{Key: services.CONFIG_CRONJOB_TIME_RANKS, Value: "0 * * * *"},
				{Key: services.CONFIG_DEFAULT_LEVEL_LABEL, Value: "Beginner"},
				{Key: services.CONFIG_TASK_POINTS_STRATEGY, Value: "priority"},
				{Key: services.CONFIG_FLAT_TASK_POINTS, Value: "15"},
				{Key: services.CONFIG_TRANSACTION_PAGE_LIMIT, Value: "50"},
			}

			for _, config := range configs {
				_, err = db.NewInsert().Model(&config).Exec(ctx)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert the default ladder
func commandLadderMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-ladder",
		Description: "Insert default ladder levels to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			levels := []models.LadderLevel{
				{Level: 1, Label: "Beginner", PointsRequired: 0},
				{Level: 2, Label: "Contributor", PointsRequired: 100},
				{Level: 3, Label: "Achiever", PointsRequired: 300},
				{Level: 4, Label: "Expert", PointsRequired: 700},
				{Level: 5, Label: "Legend", PointsRequired: 1500},
			}

			for _, level := range levels {
				err = datastore.CreateLadderLevel(ctx, db, &level)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// seed a starter achievement and reward catalog
func commandCatalogMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-catalog",
		Description: "Insert starter achievements and rewards to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			achievements := []models.Achievement{
				{
					AchievementID: "first-task",
					Name:          "First Steps",
					Description:   "Complete your first task",
					Criteria:      &models.Criteria{Type: models.CriteriaTaskCompletionCount, TaskCount: 1},
				},
				{
					AchievementID: "task-streak-10",
					Name:          "Taskmaster",
					Description:   "Complete ten tasks",
					Criteria:      &models.Criteria{Type: models.CriteriaTaskCompletionCount, TaskCount: 10},
				},
				{
					AchievementID: "points-500",
					Name:          "Point Collector",
					Description:   "Earn 500 lifetime points",
					Criteria:      &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 500},
				},
				{
					AchievementID: "level-3",
					Name:          "Climber",
					Description:   "Reach ladder level 3",
					Criteria:      &models.Criteria{Type: models.CriteriaLevelReached, RequiredLevel: 3},
				},
			}

			for _, achievement := range achievements {
				err = datastore.CreateAchievement(ctx, db, &achievement)
				if err != nil {
					log.Println(err)
				}
			}

			rewards := []models.Reward{
				{RewardID: "coffee-voucher", Name: "Coffee Voucher", Description: "A free coffee on us", CostInPoints: 50, Available: true},
				{RewardID: "half-day-off", Name: "Half Day Off", Description: "Leave at noon, guilt free", CostInPoints: 400, Available: true},
				{RewardID: "conference-ticket", Name: "Conference Ticket", Description: "One ticket to a conference of your choice", CostInPoints: 1200, Available: true},
			}

			for _, reward := range rewards {
				err = datastore.CreateReward(ctx, db, &reward)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
