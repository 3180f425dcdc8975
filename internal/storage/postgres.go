package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV implements KV on the kv_slots table using pgx/v5.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV creates a new PostgresKV. The schema must already be migrated.
func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresKV) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM kv_slots WHERE slot_key = $1`, key,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot: %w", err)
	}
	return payload, true, nil
}

func (s *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_slots (slot_key, payload, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (slot_key) DO UPDATE SET
		   payload = EXCLUDED.payload,
		   updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set slot: %w", err)
	}
	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv_slots WHERE slot_key = $1`, key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func (s *PostgresKV) Close() error {
	s.pool.Close()
	return nil
}
