package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"lablink/internal/models"
)

// SnapshotRepository is the durable key-value surface the store persists to.
// Load returns (nil, nil) when nothing has been saved under key yet.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) (*models.Snapshot, error)
	Save(ctx context.Context, key string, snapshot models.Snapshot) error
}

func encodeSnapshot(snapshot models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(key string, data []byte) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return &snapshot, nil
}
