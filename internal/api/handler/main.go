package handler

import (
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})
		routesAPIv1.Use(cors)

		u := groupUser{cfg.Container}
		routesAPIv1.POST("/users", u.Register)
		routesAPIv1.GET("/users", u.List)
		routesAPIv1.GET("/users/:id", u.Show)

		p := groupPoints{cfg.Container}
		routesAPIv1.GET("/users/:id/points", p.GetBalance)
		routesAPIv1.GET("/users/:id/transactions", p.GetTransactions)
		routesAPIv1.POST("/points/award", p.Award)

		ld := groupLadder{cfg.Container}
		routesAPIv1.GET("/users/:id/ladder", ld.GetStatus)
		routesAPIv1.GET("/ladder/levels", ld.GetLevels)
		routesAPIv1.POST("/ladder/levels", ld.CreateLevel)
		routesAPIv1.PUT("/ladder/levels/:level", ld.UpdateLevel)
		routesAPIv1.DELETE("/ladder/levels/:level", ld.DeleteLevel)

		l := groupLeaderboard{cfg.Container}
		routesAPIv1.GET("/leaderboard", l.GetPage)
		routesAPIv1.GET("/leaderboard/top", l.GetTop)
		routesAPIv1.GET("/leaderboard/departments/:department", l.GetDepartmentPage)
		routesAPIv1.GET("/leaderboard/users/:id", l.GetUserEntry)
		routesAPIv1.POST("/leaderboard/ranks", l.CalculateRanks)

		a := groupAchievement{cfg.Container}
		routesAPIv1.GET("/achievements", a.List)
		routesAPIv1.POST("/achievements", a.Create)
		routesAPIv1.GET("/achievements/:id", a.Show)
		routesAPIv1.PUT("/achievements/:id", a.Update)
		routesAPIv1.DELETE("/achievements/:id", a.Delete)
		routesAPIv1.GET("/users/:id/achievements", a.ListForUser)

		rw := groupReward{cfg.Container}
		routesAPIv1.GET("/rewards", rw.List)
		routesAPIv1.POST("/rewards", rw.Create)
		routesAPIv1.PUT("/rewards/:id", rw.Update)
		routesAPIv1.POST("/rewards/:id/redeem", rw.Redeem)
		routesAPIv1.GET("/redemptions/:id", rw.ShowRedemption)
		routesAPIv1.POST("/redemptions/:id/complete", rw.CompleteRedemption)
		routesAPIv1.POST("/redemptions/:id/cancel", rw.CancelRedemption)
		routesAPIv1.GET("/users/:id/redemptions", rw.ListRedemptionsForUser)

		t := groupTaskEvent{cfg.Container}
		routesAPIv1Tasks := routesAPIv1.Group("/tasks")
		routesAPIv1Tasks.Use(middlewareRateLimitTaskEvents(cfg.Container))
		routesAPIv1Tasks.POST("/events", t.Record)
		routesAPIv1Tasks.POST("/events/batch", t.RecordBatch)
		routesAPIv1Tasks.GET("/events/:id", t.Show)
		routesAPIv1.GET("/users/:id/tasks/events", t.ListForUser)
	}

	return r, nil
}
