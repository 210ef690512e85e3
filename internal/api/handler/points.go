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

type groupPoints struct {
	container *do.Injector
}

type awardRequest struct {
	UserID    string         `json:"user_id"`
	Points    int64          `json:"points"`
	EventType string         `json:"event_type"`
	Metadata  map[string]any `json:"metadata"`
}

func (gr *groupPoints) Award(c echo.Context) error {
	servicePoints, err := do.Invoke[*services.ServicePoints](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var req awardRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if req.EventType == "" {
		req.EventType = services.EVENT_POINTS_EARNED
	}

	result, err := servicePoints.AwardPoints(c.Request().Context(), req.UserID, req.Points, req.EventType, req.Metadata)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	case errors.Is(err, services.ErrInvalidPoints):
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	case err != nil:
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupPoints) GetBalance(c echo.Context) error {
	servicePoints, err := do.Invoke[*services.ServicePoints](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	userID := c.Param("id")

	available, err := servicePoints.GetAvailablePoints(ctx, userID)
	if errors.Is(err, services.ErrUserNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	earned, err := servicePoints.GetEarnedPoints(ctx, userID)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ledger, err := servicePoints.LedgerBalance(ctx, userID)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]any{
		"user_id":          userID,
		"earned_points":    earned,
		"available_points": available,
		"ledger_balance":   ledger,
	}, nil)
}

func (gr *groupPoints) GetTransactions(c echo.Context) error {
	servicePoints, err := do.Invoke[*services.ServicePoints](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	userID := c.Param("id")

	if eventType := c.QueryParam("type"); eventType != "" {
		txs, err := servicePoints.GetTransactionsByType(ctx, userID, eventType)
		if err != nil {
			return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
		}
		return httpx.RestAbort(c, txs, nil)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	txs, err := servicePoints.GetTransactionHistory(ctx, userID, limit)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, txs, nil)
}
