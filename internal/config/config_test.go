package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "lab-link-storage", cfg.SnapshotKey)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, int64(100), cfg.HomeCollectionCharge)
	assert.True(t, cfg.Offline())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("WP_API_BASE", "https://lab.example.com/wp-json/")
	t.Setenv("HOME_COLLECTION_CHARGE", "150")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "https://lab.example.com/wp-json", cfg.WPAPIBase)
	assert.False(t, cfg.Offline())
	assert.Equal(t, int64(150), cfg.HomeCollectionCharge)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	base := Config{StorageDriver: DriverMemory, JWTSecret: "s"}
	assert.NoError(t, base.Validate())

	bad := base
	bad.StorageDriver = "mongo"
	assert.Error(t, bad.Validate())

	bad = base
	bad.StorageDriver = DriverPostgres
	assert.Error(t, bad.Validate())

	bad = base
	bad.HomeCollectionCharge = -1
	assert.Error(t, bad.Validate())

	bad = base
	bad.JWTSecret = ""
	assert.Error(t, bad.Validate())
}
