// Package bootstrap wires the database, Redis and seed data for the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/passwords"
	"quill/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
	Hasher       passwords.Hasher
}

// InitRuntime connects to DB and Redis and optionally runs built-in seeding.
// The Redis client is nil when REDIS_URL is empty or unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.SeedBuiltIns {
		if err := seed.BuiltIns(db, cfg, opts.Hasher); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to seed built-in content: %w", err)
		}
	}

	return db, cache.Connect(ctx, cfg.RedisURL), nil
}
