package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanPageSize bounds both SCAN pages and DEL batches during prefix
// deletion.
const scanPageSize = 100

// RedisConfig carries Redis connection settings.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Redis is a Store backed by a Redis instance, for deployments where
// analyses must survive restarts and be shared across replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (r *Redis) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	count := 0
	batch := make([]string, 0, scanPageSize)

	iter := r.client.Scan(ctx, 0, prefix+"*", scanPageSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanPageSize {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return count, fmt.Errorf("redis del: %w", err)
			}
			count += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return count, fmt.Errorf("redis scan: %w", err)
	}

	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return count, fmt.Errorf("redis del: %w", err)
		}
		count += len(batch)
	}
	return count, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
