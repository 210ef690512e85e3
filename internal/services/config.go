package services

import (
	"context"
	"strconv"

	"gamify/internal/interfaces"
	"gamify/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceConfig struct {
	container *do.Injector
	configs   interfaces.ConfigRepository
	cache     caching.Cache
}

func NewServiceConfig(container *do.Injector) (*ServiceConfig, error) {
	configs, err := do.Invoke[interfaces.ConfigRepository](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{container, configs, cache}, nil
}

func (service *ServiceConfig) GetConfig(ctx context.Context, key string) (string, error) {
	return caching.UseCache(ctx, service.cache, DBKeyConfig(key), CACHE_TTL_1_MIN, func() (string, error) {
		return service.configs.Get(ctx, key)
	})
}

func (service *ServiceConfig) GetConfigWithDefault(ctx context.Context, key string, fallback string) string {
	v, err := service.GetConfig(ctx, key)
	if err != nil || v == "" {
		return fallback
	}
	return v
}

func (service *ServiceConfig) GetIntConfig(ctx context.Context, key string, fallback int) (int, error) {
	v, err := service.GetConfig(ctx, key)
	if err != nil {
		return fallback, err
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, err
	}

	return n, nil
}

func (service *ServiceConfig) SetConfig(ctx context.Context, key, value string) error {
	if err := service.configs.Set(ctx, key, value); err != nil {
		return err
	}

	return service.cache.Delete(ctx, DBKeyConfig(key))
}
