package datastore

import (
	"context"

	"gamify/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Config)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetConfig(ctx context.Context, db bun.IDB, key string) (string, error) {
	var cfg models.Config
	err := db.NewSelect().Model(&cfg).Where("key = ?", key).Scan(ctx)
	if err != nil {
		return "", err
	}

	return cfg.Value, nil
}

func SetConfig(ctx context.Context, db bun.IDB, key, value string) error {
	cfg := &models.Config{Key: key, Value: value}
	_, err := db.NewInsert().Model(cfg).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

type ConfigStore struct {
	db *bun.DB
}

func NewConfigStore(db *bun.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

func (s *ConfigStore) Get(ctx context.Context, key string) (string, error) {
	return GetConfig(ctx, idb(ctx, s.db), key)
}

func (s *ConfigStore) Set(ctx context.Context, key, value string) error {
	return SetConfig(ctx, idb(ctx, s.db), key, value)
}
