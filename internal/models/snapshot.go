package models

import "time"

// Snapshot is the persisted subset of store state.
type Snapshot struct {
	DarkMode      bool          `json:"darkMode"`
	Cart          []CartLine    `json:"cart"`
	AppliedCoupon *Coupon       `json:"appliedCoupon"`
	Tests         []CatalogItem `json:"tests"`
	Doctors       []CatalogItem `json:"doctors"`
	User          UserDetails   `json:"user"`
	Patients      []Patient     `json:"patients"`
	Orders        []Order       `json:"orders"`
	B2BUser       *B2BUser      `json:"b2bUser"`
}

// SnapshotRecord is the row a SQL backend stores a snapshot in.
type SnapshotRecord struct {
	Key       string `gorm:"column:snapshot_key;primaryKey;type:varchar(128)"`
	Data      []byte
	UpdatedAt time.Time
}

// TableName pins the table name regardless of naming strategy.
func (SnapshotRecord) TableName() string {
	return "snapshots"
}
