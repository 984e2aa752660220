package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fmi-projects/project-management-api/config"
)

// OpenRedis returns nil when Redis is not configured or unreachable. Callers
// fall back to running without the login lockout.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) *redis.Client {
	if !cfg.Enabled() {
		log.Info().Msg("REDIS_ADDR not set; login lockout disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis ping failed; continuing without redis")
		_ = client.Close()
		return nil
	}

	return client
}
