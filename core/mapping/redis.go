package mapping

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type redisStore struct {
	client *redis.Client
}

func newRedisStore(cfg Config, logger *zap.Logger) (*redisStore, error) {
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	db, _ := strconv.Atoi(cfg.Name)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + strconv.Itoa(port),
		Password: cfg.Password,
		DB:       db,
	})

	logger.Info("Set redis store as auctions mapping",
		zap.String("addr", client.Options().Addr),
		zap.Int("db", db),
	)
	return &redisStore{client: client}, nil
}

func (s *redisStore) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisStore) Put(ctx context.Context, key string) error {
	// No expiry: a handled marker must outlive any feed redelivery window.
	return s.client.Set(ctx, key, "1", 0).Err()
}
