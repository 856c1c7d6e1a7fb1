package storage

import (
	"context"
	"fmt"
	"time"

	"diljourney/internal/db"
)

type Config struct {
	Driver       string // empty picks mongo, then postgres, then memory from what is set
	MongoURI     string
	MongoDB      string
	PostgresAddr string
	MaxConns     int
	MaxIdleTime  time.Duration
}

// ResolveDriver returns the backend Open will use for cfg.
func (cfg Config) ResolveDriver() string {
	switch {
	case cfg.Driver != "":
		return cfg.Driver
	case cfg.MongoURI != "":
		return DriverMongo
	case cfg.PostgresAddr != "":
		return DriverPostgres
	default:
		return DriverMemory
	}
}

// Open connects the configured backend. The returned close func releases its
// connections and is never nil.
func Open(ctx context.Context, cfg Config) (*Container, func(), error) {
	noop := func() {}

	switch driver := cfg.ResolveDriver(); driver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, noop, fmt.Errorf("storage: %s driver needs MONGO_URI", driver)
		}
		client, database, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, noop, fmt.Errorf("connect mongo: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		c, err := NewMongoContainer(ctx, database)
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		return c, closeFn, nil

	case DriverPostgres:
		if cfg.PostgresAddr == "" {
			return nil, noop, fmt.Errorf("storage: %s driver needs DB_ADDR", driver)
		}
		pool, err := db.New(cfg.PostgresAddr, int32(cfg.MaxConns), cfg.MaxIdleTime)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("migrate: %w", err)
		}
		return NewPostgresContainer(pool), pool.Close, nil

	case DriverMemory:
		return NewMemoryContainer(), noop, nil

	default:
		return nil, noop, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
