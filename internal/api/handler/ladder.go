package handler

import (
	"database/sql"
	"errors"
	"strconv"

	"gamify/internal/models"
	"gamify/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupLadder struct {
	container *do.Injector
}

func (gr *groupLadder) GetStatus(c echo.Context) error {
	serviceLadder, err := do.Invoke[*services.ServiceLadder](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	servicePoints, err := do.Invoke[*services.ServicePoints](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	userID := c.Param("id")

	earned, err := servicePoints.GetEarnedPoints(ctx, userID)
	if errors.Is(err, services.ErrUserNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	status, err := serviceLadder.GetStatus(ctx, userID, earned)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, status, nil)
}

func (gr *groupLadder) GetLevels(c echo.Context) error {
	serviceLadder, err := do.Invoke[*services.ServiceLadder](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	levels, err := serviceLadder.GetLevels(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, levels, nil)
}

func (gr *groupLadder) CreateLevel(c echo.Context) error {
	serviceLadder, err := do.Invoke[*services.ServiceLadder](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var level models.LadderLevel
	if err := c.Bind(&level); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if err := serviceLadder.CreateLevel(c.Request().Context(), &level); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	return httpx.RestAbort(c, level, nil)
}

func (gr *groupLadder) DeleteLevel(c echo.Context) error {
	serviceLadder, err := do.Invoke[*services.ServiceLadder](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	levelNumber, err := strconv.ParseInt(c.Param("level"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	err = serviceLadder.DeleteLevel(c.Request().Context(), levelNumber)
	if errors.Is(err, services.ErrLevelOccupied) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, true, nil)
}

func (gr *groupLadder) UpdateLevel(c echo.Context) error {
	serviceLadder, err := do.Invoke[*services.ServiceLadder](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	levelNumber, err := strconv.ParseInt(c.Param("level"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	var level models.LadderLevel
	if err := c.Bind(&level); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	level.Level = levelNumber

	if err := serviceLadder.UpdateLevel(c.Request().Context(), &level); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, level, nil)
}
