package handler

import (
	"errors"
	"time"

	"gamify/internal/interfaces"
	"gamify/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

// middlewareRateLimitTaskEvents throttles task event ingestion per caller
// address so a runaway producer cannot flood the ledger.
func middlewareRateLimitTaskEvents(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter, err := do.Invoke[interfaces.Limiter](container)
			if err != nil {
				return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
			}

			allowed, err := limiter.Allow(
				c.Request().Context(),
				services.LimitKeyTaskEvents(c.RealIP()),
				services.TASK_EVENT_RATE_LIMIT_PER_MINUTE,
				time.Minute,
			)
			if err != nil {
				return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
			}
			if !allowed {
				return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("too many task events"), errorx.RateLimiting))
			}

			return next(c)
		}
	}
}
