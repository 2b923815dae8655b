// Package config loads runtime settings from defaults, an optional YAML file
// and MATURITY_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"maturity/internal/blob"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MATURITY_"

// Storage drivers understood by core.OpenStorage.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// DefaultStorageKey names the single entry the assessment is persisted under.
const DefaultStorageKey = "w3c-maturity-assessment"

// Config is the full runtime configuration.
type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	Archive  ArchiveConfig `yaml:"archive" envPrefix:"ARCHIVE_"`
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL"`
	// MetricsFile receives the store metrics in Prometheus text format when set.
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`
}

// StorageConfig selects the durable state backend.
type StorageConfig struct {
	Driver      string `yaml:"driver" env:"STORAGE_DRIVER"`
	Key         string `yaml:"key" env:"STORAGE_KEY"`
	SQLitePath  string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	PostgresDSN string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
}

// ArchiveConfig selects the snapshot archive blob backend.
type ArchiveConfig struct {
	Driver string   `yaml:"driver" env:"DRIVER"`
	FSRoot string   `yaml:"fs_root" env:"FS_ROOT"`
	S3     S3Config `yaml:"s3" envPrefix:"S3_"`
}

// S3Config holds S3 archive settings. Credentials come from the AWS chain.
type S3Config struct {
	Bucket    string `yaml:"bucket" env:"BUCKET"`
	Region    string `yaml:"region" env:"REGION"`
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	PathStyle bool   `yaml:"path_style" env:"PATH_STYLE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver:     StorageSQLite,
			Key:        DefaultStorageKey,
			SQLitePath: "maturity.db",
		},
		Archive: ArchiveConfig{
			Driver: string(blob.DriverFilesystem),
			FSRoot: "./archive",
		},
		LogLevel: "info",
	}
}

// Load reads path (when non-empty) over the defaults, then applies the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment; a nil map reads the process environment.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers, empty keys and unparsable log levels.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage key must not be empty"))
	}
	switch blob.Driver(c.Archive.Driver) {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.Archive.S3.Bucket == "" {
			errs = append(errs, errors.New("archive s3 bucket required for s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown archive driver %q", c.Archive.Driver))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// BlobOptions maps the archive settings onto the blob factory options.
func (c ArchiveConfig) BlobOptions() blob.Options {
	return blob.Options{
		Driver: blob.Driver(c.Driver),
		FSRoot: c.FSRoot,
		S3: blob.S3Config{
			Bucket:    c.S3.Bucket,
			Region:    c.S3.Region,
			Endpoint:  c.S3.Endpoint,
			PathStyle: c.S3.PathStyle,
		},
	}
}
