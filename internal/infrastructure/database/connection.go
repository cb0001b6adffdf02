package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	// One record and one writer at a time: a handful of connections is plenty.
	maxConns        = 4
	maxConnIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

func poolConfig(dsn string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("database: parse DATABASE_URL: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnIdleTime = maxConnIdleTime
	return cfg, nil
}

// Open prepares the Postgres backend: schema migrations, a small pool and the
// store bound to slot. The returned func closes the pool.
func Open(ctx context.Context, dsn, slot string) (*EventStore, func(), error) {
	cfg, err := poolConfig(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := RunMigrations(dsn); err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database: pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}

	store := NewEventStore(pool, slot)
	log.WithField("slot", store.slot).Info("✅ Base de données PostgreSQL connectée.")
	return store, pool.Close, nil
}
