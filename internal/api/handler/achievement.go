package handler

import (
	"errors"

	"gamify/internal/models"
	"gamify/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAchievement struct {
	container *do.Injector
}

func (gr *groupAchievement) List(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	achievements, err := serviceAchievement.GetAllAchievements(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, achievements, nil)
}

func (gr *groupAchievement) Show(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	achievement, err := serviceAchievement.GetAchievement(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}

	return httpx.RestAbort(c, achievement, nil)
}

func (gr *groupAchievement) Create(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var achievement models.Achievement
	if err := c.Bind(&achievement); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	err = serviceAchievement.CreateAchievement(c.Request().Context(), &achievement)
	if errors.Is(err, services.ErrAchievementNameTaken) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	return httpx.RestAbort(c, achievement, nil)
}

func (gr *groupAchievement) Update(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var achievement models.Achievement
	if err := c.Bind(&achievement); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	achievement.AchievementID = c.Param("id")

	if err := serviceAchievement.UpdateAchievement(c.Request().Context(), &achievement); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, achievement, nil)
}

func (gr *groupAchievement) Delete(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	err = serviceAchievement.DeleteAchievement(c.Request().Context(), c.Param("id"))
	if errors.Is(err, services.ErrAchievementInUse) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]any{"deleted": true}, nil)
}

func (gr *groupAchievement) ListForUser(c echo.Context) error {
	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	achievements, err := serviceAchievement.GetUserAchievements(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, achievements, nil)
}
