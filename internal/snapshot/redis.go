package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisBackend keeps the session blob under a single key.
type RedisBackend struct {
	rdb *redis.Client
	key string
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(addr, password string, db int, key string) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisBackend{rdb: rdb, key: key}, nil
}

// Save overwrites the blob. No TTL: the snapshot lives until replaced.
func (b *RedisBackend) Save(ctx context.Context, blob []byte) error {
	return b.rdb.Set(ctx, b.key, blob, 0).Err()
}

// Load reads the blob, returning (nil, nil) when the key does not exist.
func (b *RedisBackend) Load(ctx context.Context) ([]byte, error) {
	blob, err := b.rdb.Get(ctx, b.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
