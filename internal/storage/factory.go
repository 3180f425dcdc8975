package storage

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/reportaudit/internal/config"
)

// Open builds the KV selected by cfg.Backend. The postgres backend applies
// pending migrations before returning.
func Open(ctx context.Context, cfg config.HistoryConfig) (KV, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryKV(), nil
	case "file":
		kv, err := NewFileKV(cfg.File.Dir)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "redis":
		kv, err := NewRedisKV(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return kv, nil
	case "postgres":
		if err := RunMigrations(cfg.Postgres.URL); err != nil {
			return nil, err
		}
		pool, err := Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return NewPostgresKV(pool), nil
	case "sqlite":
		kv, err := OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "mysql":
		kv, err := OpenMySQL(ctx, cfg.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "minio":
		kv, err := NewMinioKV(ctx, cfg.Minio)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
