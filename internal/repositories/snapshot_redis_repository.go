package repositories

import (
	"context"
	"errors"
	"fmt"

	"lablink/internal/models"

	"github.com/go-redis/redis/v8"
)

// RedisSnapshotRepository stores snapshots as JSON strings in Redis.
type RedisSnapshotRepository struct {
	client *redis.Client
}

// NewRedisSnapshotRepository creates a new instance of RedisSnapshotRepository.
func NewRedisSnapshotRepository(client *redis.Client) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{
		client: client,
	}
}

// Load retrieves the snapshot stored under key.
func (r *RedisSnapshotRepository) Load(ctx context.Context, key string) (*models.Snapshot, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return decodeSnapshot(key, data)
}

// Save replaces the snapshot stored under key. Snapshots never expire.
func (r *RedisSnapshotRepository) Save(ctx context.Context, key string, snapshot models.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}
