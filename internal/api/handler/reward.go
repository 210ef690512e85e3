package handler

import (
	"errors"

	"gamify/internal/models"
	"gamify/internal/services"
	"gamify/internal/states"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupReward struct {
	container *do.Injector
}

func (gr *groupReward) List(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards, err := serviceReward.GetAllRewards(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, rewards, nil)
}

func (gr *groupReward) Create(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var reward models.Reward
	if err := c.Bind(&reward); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if err := serviceReward.CreateReward(c.Request().Context(), &reward); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	return httpx.RestAbort(c, reward, nil)
}

func (gr *groupReward) Update(c echo.Context) error {
	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var reward models.Reward
	if err := c.Bind(&reward); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	reward.RewardID = c.Param("id")

	err = serviceReward.UpdateReward(c.Request().Context(), &reward)
	if errors.Is(err, services.ErrRewardNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, reward, nil)
}

type redeemRequest struct {
	UserID string `json:"user_id"`
}

func (gr *groupReward) Redeem(c echo.Context) error {
	serviceRedemption, err := do.Invoke[*services.ServiceRedemption](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if req.UserID == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("user_id is required"), errorx.Invalid))
	}

	result, err := serviceRedemption.RedeemReward(c.Request().Context(), req.UserID, c.Param("id"))
	if errors.Is(err, services.ErrUserLock) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.RateLimiting))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupReward) ShowRedemption(c echo.Context) error {
	serviceRedemption, err := do.Invoke[*services.ServiceRedemption](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	redemption, err := serviceRedemption.GetRedemption(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}

	return httpx.RestAbort(c, redemption, nil)
}

func (gr *groupReward) CompleteRedemption(c echo.Context) error {
	serviceRedemption, err := do.Invoke[*services.ServiceRedemption](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	redemption, err := serviceRedemption.CompleteRedemption(c.Request().Context(), c.Param("id"))
	if errors.Is(err, states.ErrAlreadyFinalized) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, redemption, nil)
}

func (gr *groupReward) CancelRedemption(c echo.Context) error {
	serviceRedemption, err := do.Invoke[*services.ServiceRedemption](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	redemption, err := serviceRedemption.CancelRedemption(c.Request().Context(), c.Param("id"))
	if errors.Is(err, states.ErrAlreadyFinalized) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, redemption, nil)
}

func (gr *groupReward) ListRedemptionsForUser(c echo.Context) error {
	serviceRedemption, err := do.Invoke[*services.ServiceRedemption](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	redemptions, err := serviceRedemption.GetUserRedemptions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, redemptions, nil)
}
