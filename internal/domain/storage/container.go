package storage

import (
	"context"
	"fmt"

	"diljourney/internal/domain/reviews"
	"diljourney/internal/domain/users"
	"diljourney/internal/domain/venues"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Container struct {
	Driver  string
	Users   users.Store
	Venues  venues.Store
	Reviews reviews.Store
}

// NewMongoContainer wires the document-store repositories and makes sure
// their indexes exist.
func NewMongoContainer(ctx context.Context, db *mongo.Database) (*Container, error) {
	indexes := []struct {
		name   string
		ensure func(context.Context, *mongo.Database) error
	}{
		{"users", users.EnsureMongoIndexes},
		{"venues", venues.EnsureMongoIndexes},
		{"reviews", reviews.EnsureMongoIndexes},
	}
	for _, idx := range indexes {
		if err := idx.ensure(ctx, db); err != nil {
			return nil, fmt.Errorf("ensure %s indexes: %w", idx.name, err)
		}
	}

	return &Container{
		Driver:  DriverMongo,
		Users:   users.NewMongoRepository(db),
		Venues:  venues.NewMongoRepository(db),
		Reviews: reviews.NewMongoRepository(db),
	}, nil
}

func NewPostgresContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Driver:  DriverPostgres,
		Users:   users.NewPostgresRepository(db),
		Venues:  venues.NewPostgresRepository(db),
		Reviews: reviews.NewPostgresRepository(db),
	}
}

// NewMemoryContainer is used when no database is configured and by tests.
func NewMemoryContainer() *Container {
	return &Container{
		Driver:  DriverMemory,
		Users:   users.NewMemoryRepository(),
		Venues:  venues.NewMemoryRepository(),
		Reviews: reviews.NewMemoryRepository(),
	}
}
