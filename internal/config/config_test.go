package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

func TestDefaultsValidate(t *testing.T) {
	cfg, err := LoadWithEnv("", map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults changed (-want +got):\n%s", diff)
	}
	if cfg.Storage.Key != "w3c-maturity-assessment" {
		t.Fatalf("unexpected storage key %q", cfg.Storage.Key)
	}
}

func TestFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maturity.yaml")
	doc := `
storage:
  driver: postgres
  postgres_dsn: postgres://file/db
archive:
  driver: s3
  s3:
    bucket: file-bucket
    region: eu-west-1
log_level: warn
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadWithEnv(path, map[string]string{
		"MATURITY_POSTGRES_DSN":          "postgres://env/db",
		"MATURITY_ARCHIVE_S3_PATH_STYLE": "true",
		"MATURITY_LOG_LEVEL":             "debug",
		"MATURITY_METRICS_FILE":          "/var/lib/node_exporter/maturity.prom",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.Storage.Driver = StoragePostgres
	want.Storage.PostgresDSN = "postgres://env/db"
	want.Archive.Driver = "s3"
	want.Archive.S3 = S3Config{Bucket: "file-bucket", Region: "eu-west-1", PathStyle: true}
	want.LogLevel = "debug"
	want.MetricsFile = "/var/lib/node_exporter/maturity.prom"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	level, err := cfg.Level()
	if err != nil || level != zapcore.DebugLevel {
		t.Fatalf("level: %v %v", level, err)
	}
	opts := cfg.Archive.BlobOptions()
	if opts.Driver != "s3" || opts.S3.Bucket != "file-bucket" || !opts.S3.PathStyle {
		t.Fatalf("unexpected blob options %+v", opts)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		want string
	}{
		"storage driver": {map[string]string{"MATURITY_STORAGE_DRIVER": "redis"}, "unknown storage driver"},
		"archive driver": {map[string]string{"MATURITY_ARCHIVE_DRIVER": "ftp"}, "unknown archive driver"},
		"s3 bucket":      {map[string]string{"MATURITY_ARCHIVE_DRIVER": "s3"}, "bucket required"},
		"log level":      {map[string]string{"MATURITY_LOG_LEVEL": "loud"}, "log level"},
		"empty key":      {map[string]string{"MATURITY_STORAGE_KEY": " "}, "storage key"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWithEnv("", tc.env)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), map[string]string{}); err == nil {
		t.Fatalf("expected missing file error")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWithEnv(path, map[string]string{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
