package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// Schema of the deals table. Deals are stored as one JSONB snapshot per id.
const Schema = `
CREATE TABLE IF NOT EXISTS deals (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	deal_json  JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);`

// InitDB initializes the shared connection pool and applies the schema.
func InitDB(ctx context.Context, dbURL string) error {
	var err error
	once.Do(func() {
		if dbURL == "" {
			err = fmt.Errorf("database url not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			err = fmt.Errorf("failed to create pool: %w", err)
			return
		}

		if _, execErr := pool.Exec(ctx, Schema); execErr != nil {
			err = fmt.Errorf("failed to apply schema: %w", execErr)
		}
	})
	return err
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}
