package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
)

// Store wraps the Postgres connection pool with the query methods the
// services need. All methods take a context and return explicit errors;
// callers decide what is fatal.
type Store struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// New connects to Postgres and verifies the connection with a ping.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is not configured (set DATABASE_URL)")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.ConnConfig.ConnectTimeout = cfg.Database.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{
		pool:   pool,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
