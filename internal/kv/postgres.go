package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createEntriesTable = `
create table if not exists kv_entries (
    key        text primary key,
    value      text not null,
    updated_at timestamptz not null default now()
)`

const upsertEntry = `
insert into kv_entries (key, value) values ($1, $2)
on conflict (key) do update set value = excluded.value, updated_at = now()`

// incrementEntry relies on the single-statement upsert being atomic, which
// closes the quota race without an explicit transaction.
const incrementEntry = `
insert into kv_entries (key, value) values ($1, '1')
on conflict (key) do update
    set value = ((kv_entries.value)::bigint + 1)::text, updated_at = now()
returning (value)::bigint`

// PostgresStore backs the Store contract with a single key-value table on a
// pgx pool. It is the alternative to Redis for deployments that already run
// Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a pgx pool and ensures the backing table exists.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if _, err := pool.Exec(connectCtx, createEntriesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure kv_entries: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `select value from kv_entries where key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key, value string) error {
	if _, err := s.pool.Exec(ctx, upsertEntry, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Incr(ctx context.Context, key string) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, incrementEntry, key).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	return count, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
