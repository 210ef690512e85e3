package handler

import (
	"errors"

	"gamify/internal/commands"
	"gamify/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupTaskEvent struct {
	container *do.Injector
}

func (gr *groupTaskEvent) Record(c echo.Context) error {
	factory, err := do.Invoke[*commands.Factory](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var input commands.TaskEventInput
	if err := c.Bind(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	cmd, err := factory.FromInput(input)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	result, err := cmd.Execute(c.Request().Context())
	if errors.Is(err, services.ErrUserNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupTaskEvent) RecordBatch(c echo.Context) error {
	factory, err := do.Invoke[*commands.Factory](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var inputs []commands.TaskEventInput
	if err := c.Bind(&inputs); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	cmd, err := factory.FromInputs(inputs)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	result, err := cmd.Execute(c.Request().Context())
	if errors.Is(err, services.ErrUserNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupTaskEvent) Show(c echo.Context) error {
	serviceTaskEvent, err := do.Invoke[*services.ServiceTaskEvent](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	event, err := serviceTaskEvent.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}

	return httpx.RestAbort(c, event, nil)
}

func (gr *groupTaskEvent) ListForUser(c echo.Context) error {
	serviceTaskEvent, err := do.Invoke[*services.ServiceTaskEvent](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	events, err := serviceTaskEvent.GetEventsByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, events, nil)
}
