package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/wellscan/patient-portal/internal/config"
)

// New connects the single process-wide Redis client. The handle is created
// once at startup and closed on shutdown; nothing lazily re-creates it per
// request.
func New(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
