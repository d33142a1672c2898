package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Snapshot storage.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseDSN   string `mapstructure:"DATABASE_DSN"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	SnapshotKey   string `mapstructure:"SNAPSHOT_KEY"`

	// WordPress / WooCommerce. An empty base URL means offline mode.
	WPAPIBase   string        `mapstructure:"WP_API_BASE"`
	WCKey       string        `mapstructure:"WC_KEY"`
	WCSecret    string        `mapstructure:"WC_SECRET"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`

	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	HomeCollectionCharge int64 `mapstructure:"HOME_COLLECTION_CHARGE"`
}

// Load reads config.yaml (from . or ./config) if present, then environment
// variables, over built-in defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.WPAPIBase = strings.TrimRight(strings.TrimSpace(cfg.WPAPIBase), "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "lablink.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SNAPSHOT_KEY", "lab-link-storage")
	v.SetDefault("WP_API_BASE", "")
	v.SetDefault("WC_KEY", "")
	v.SetDefault("WC_SECRET", "")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "lablink-dev-secret")
	v.SetDefault("HOME_COLLECTION_CHARGE", 100)
}

// Validate checks values viper cannot.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverPostgres, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if (c.StorageDriver == DriverSQLite || c.StorageDriver == DriverPostgres) && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for %s storage", c.StorageDriver)
	}
	if c.HomeCollectionCharge < 0 {
		return fmt.Errorf("HOME_COLLECTION_CHARGE must not be negative")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

// Offline reports whether no WordPress backend is configured.
func (c Config) Offline() bool {
	return c.WPAPIBase == ""
}

// IsProduction reports whether the app runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
