package bootstrap

import (
	"context"
	"time"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/events"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

// SetupEventPublisher creates an optional lead event publisher. Returns
// nil (a no-op publisher) when Redis is disabled or unreachable.
func SetupEventPublisher(cfg *config.Config, log logger.Logger) *events.Publisher {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, events disabled", logger.Error(err))
		return nil
	}

	log.Info("Event publisher initialized",
		logger.String("redis_address", cfg.Redis.Address),
	)
	return events.NewPublisher(client, log)
}
