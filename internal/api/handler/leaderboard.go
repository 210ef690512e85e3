package handler

import (
	"errors"
	"strconv"

	"gamify/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupLeaderboard struct {
	container *do.Injector
}

func (gr *groupLeaderboard) GetPage(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	board, err := serviceLeaderboard.GetPage(c.Request().Context(), page, size)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, board, nil)
}

func (gr *groupLeaderboard) GetDepartmentPage(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	department := c.Param("department")
	if department == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("missing department"), errorx.Invalid))
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	board, err := serviceLeaderboard.GetDepartmentPage(c.Request().Context(), department, page, size)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, board, nil)
}

func (gr *groupLeaderboard) GetTop(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	items, err := serviceLeaderboard.GetTop(c.Request().Context(), limit)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, items, nil)
}

func (gr *groupLeaderboard) GetUserEntry(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	entry, err := serviceLeaderboard.GetUserEntry(c.Request().Context(), c.Param("id"))
	if errors.Is(err, services.ErrUserNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, entry, nil)
}

func (gr *groupLeaderboard) CalculateRanks(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceLeaderboard.CalculateRanks(c.Request().Context())
	if errors.Is(err, services.ErrRankRefreshLock) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.RateLimiting))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]any{"updated": updated}, nil)
}
