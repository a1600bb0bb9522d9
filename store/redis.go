package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"soundest/config"
)

// Redis is the shared-profile backend: each durable key maps to a Redis
// key under a fixed prefix, so the same account state can follow the
// user across machines.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to Redis using the configured address and verifies
// the connection with a ping.
func NewRedis(cfg *config.Config) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, prefix: "soundest:"}, nil
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

// Get implements Store.
func (r *Redis) Get(key string) (string, error) {
	value, err := r.client.Get(context.Background(), r.key(key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set implements Store. Values never expire; logout deletes them
// explicitly.
func (r *Redis) Set(key, value string) error {
	if err := r.client.Set(context.Background(), r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(key string) error {
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Check round-trips a throwaway key, mirroring what the storage
// diagnostic command runs.
func (r *Redis) Check() error {
	ctx := context.Background()
	probe := r.key("storage_check")

	if err := r.client.Set(ctx, probe, "ok", 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set probe key: %w", err)
	}
	val, err := r.client.Get(ctx, probe).Result()
	if err != nil {
		return fmt.Errorf("failed to get probe key: %w", err)
	}
	if val != "ok" {
		return fmt.Errorf("unexpected probe value: got %s", val)
	}
	if _, err := r.client.Del(ctx, probe).Result(); err != nil {
		return fmt.Errorf("failed to delete probe key: %w", err)
	}
	return nil
}
