package services

import (
	"context"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceConfig](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SetConfig(ctx, CONFIG_LEADERBOARD_PAGE_SIZE, "25"))

	v, err := service.GetConfig(ctx, CONFIG_LEADERBOARD_PAGE_SIZE)
	require.NoError(t, err)
	assert.Equal(t, "25", v)

	n, err := service.GetIntConfig(ctx, CONFIG_LEADERBOARD_PAGE_SIZE, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}

func TestConfigDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceConfig](env.container)
	require.NoError(t, err)

	assert.Equal(t, "Beginner", service.GetConfigWithDefault(ctx, CONFIG_DEFAULT_LEVEL_LABEL, "Beginner"))

	n, _ := service.GetIntConfig(ctx, CONFIG_LEADERBOARD_TOP_LIMIT, 10)
	assert.Equal(t, 10, n)
}

func TestSetConfigInvalidatesCachedValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	service, err := do.Invoke[*ServiceConfig](env.container)
	require.NoError(t, err)

	require.NoError(t, service.SetConfig(ctx, CONFIG_CRONJOB_TIME_RANKS, "0 * * * *"))
	v, err := service.GetConfig(ctx, CONFIG_CRONJOB_TIME_RANKS)
	require.NoError(t, err)
	assert.Equal(t, "0 * * * *", v)

	require.NoError(t, service.SetConfig(ctx, CONFIG_CRONJOB_TIME_RANKS, "*/5 * * * *"))
	v, err = service.GetConfig(ctx, CONFIG_CRONJOB_TIME_RANKS)
	require.NoError(t, err)
	assert.Equal(t, "*/5 * * * *", v)
}
