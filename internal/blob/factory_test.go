package blob

import (
	"context"
	"strings"
	"testing"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	fsStore, err := Open(ctx, Options{FSRoot: t.TempDir()})
	if err != nil || fsStore.Driver() != DriverFilesystem {
		t.Fatalf("default driver: %v %v", fsStore, err)
	}
	mem, err := Open(ctx, Options{Driver: DriverMemory})
	if err != nil || mem.Driver() != DriverMemory {
		t.Fatalf("memory driver: %v %v", mem, err)
	}
	s3Store, err := Open(ctx, Options{Driver: DriverS3, S3: S3Config{Bucket: "archive", AccessKeyID: "id", SecretAccessKey: "secret"}})
	if err != nil || s3Store.Driver() != DriverS3 {
		t.Fatalf("s3 driver: %v %v", s3Store, err)
	}
	if _, err := Open(ctx, Options{Driver: DriverS3}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
	if _, err := Open(ctx, Options{Driver: "ftp"}); err == nil || !strings.Contains(err.Error(), "unknown blob driver") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestMockS3ForTests(t *testing.T) {
	if NewMockS3ForTests().Driver() != DriverS3 {
		t.Fatalf("expected s3 driver")
	}
}
