package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lablink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSnapshotRepository is a GORM implementation of SnapshotRepository.
type GORMSnapshotRepository struct {
	db *gorm.DB
}

// NewGORMSnapshotRepository creates a new instance of GORMSnapshotRepository.
func NewGORMSnapshotRepository(db *gorm.DB) *GORMSnapshotRepository {
	return &GORMSnapshotRepository{
		db: db,
	}
}

// Load retrieves the snapshot stored under key.
func (r *GORMSnapshotRepository) Load(ctx context.Context, key string) (*models.Snapshot, error) {
	var record models.SnapshotRecord
	if err := r.db.WithContext(ctx).First(&record, "snapshot_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return decodeSnapshot(key, record.Data)
}

// Save upserts the snapshot stored under key.
func (r *GORMSnapshotRepository) Save(ctx context.Context, key string, snapshot models.Snapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	record := models.SnapshotRecord{Key: key, Data: data, UpdatedAt: time.Now()}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record)
	if res.Error != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, res.Error)
	}
	return nil
}
