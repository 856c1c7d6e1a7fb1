package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"diljourney/internal/domain/storage"
	"diljourney/internal/domain/venues"
	"diljourney/internal/env"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := command().Execute(); err != nil {
		os.Exit(1)
	}
}

func command() *cobra.Command {
	var (
		clearOnly bool
		driver    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample venue catalogue",
		Long: `Replace every venue in the configured store with the sample catalogue.

Examples:
  # Seed the database named by MONGO_URI / DB_ADDR
  seed

  # Only remove existing venues
  seed --clear`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			logger := zap.Must(zap.NewDevelopment()).Sugar()
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			store, closeStore, err := storage.Open(ctx, storage.Config{
				Driver:       driver,
				MongoURI:     env.GetString("MONGO_URI", ""),
				MongoDB:      env.GetString("MONGO_DB", "diljourney"),
				PostgresAddr: env.GetString("DB_ADDR", ""),
				MaxConns:     env.GetInt("DB_MAX_CONNS", 5),
				MaxIdleTime:  env.GetDuration("DB_MAX_IDLE_TIME", time.Minute),
			})
			if err != nil {
				logger.Errorw("seed failed", "error", err)
				return err
			}
			defer closeStore()
			logger.Infow("store connected", "driver", store.Driver)

			if store.Driver == storage.DriverMemory {
				logger.Warn("no database configured; seeding in-memory store, nothing will persist")
			}

			if clearOnly {
				n, err := store.Venues.DeleteAll(ctx)
				if err != nil {
					logger.Errorw("clear failed", "error", err)
					return err
				}
				logger.Infow("all venues cleared", "deleted", n)
				return nil
			}

			seeded, err := seed(ctx, store.Venues, catalogue())
			if err != nil {
				logger.Errorw("seed failed", "error", err)
				return err
			}
			logger.Infow("venues seeded", "count", len(seeded), "cities", strings.Join(cities(seeded), ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearOnly, "clear", false, "delete all venues and exit")
	cmd.Flags().StringVar(&driver, "driver", env.GetString("DB_DRIVER", ""), "store backend: mongo, postgres or memory")

	return cmd
}

// seed replaces the venue collection with vs and returns the stored venues.
func seed(ctx context.Context, store venues.Store, vs []venues.Venue) ([]venues.Venue, error) {
	if _, err := store.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear venues: %w", err)
	}

	out := make([]venues.Venue, 0, len(vs))
	for i := range vs {
		v := vs[i]
		v.IsActive = true
		if err := store.Create(ctx, &v); err != nil {
			return nil, fmt.Errorf("create %q: %w", v.Name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func cities(vs []venues.Venue) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range vs {
		if !seen[v.City] {
			seen[v.City] = true
			out = append(out, v.City)
		}
	}
	sort.Strings(out)
	return out
}
