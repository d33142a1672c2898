package repositories

import (
	"context"
	"sync"

	"lablink/internal/models"
)

// MockSnapshotRepository is an in-memory implementation of SnapshotRepository.
// Snapshots are kept encoded so a load never aliases live state.
type MockSnapshotRepository struct {
	snapshots map[string][]byte
	saves     int
	mu        sync.RWMutex
}

// NewMockSnapshotRepository creates a new instance of MockSnapshotRepository.
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{
		snapshots: make(map[string][]byte),
	}
}

// Load returns the snapshot stored under key.
func (r *MockSnapshotRepository) Load(_ context.Context, key string) (*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.snapshots[key]
	if !ok {
		return nil, nil
	}
	return decodeSnapshot(key, data)
}

// Save replaces the snapshot stored under key.
func (r *MockSnapshotRepository) Save(_ context.Context, key string, snapshot models.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[key] = data
	r.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (r *MockSnapshotRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
