package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maturity/internal/blob/core"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilesystemLifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Driver() != core.DriverFilesystem || s.Root() != root {
		t.Fatalf("unexpected driver/root %s %s", s.Driver(), s.Root())
	}
	payload := `{"id":"x"}`
	info, err := s.Put(ctx, "assessments/x/20240101T000000Z.json", strings.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"organization": "Acme"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) || len(info.ETag) != 64 {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := s.Put(ctx, "assessments/x/20240101T000000Z.json", strings.NewReader("y"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	got, rc, err := s.Get(ctx, "assessments/x/20240101T000000Z.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != payload || got.ContentType != "application/json" || got.Metadata["organization"] != "Acme" {
		t.Fatalf("unexpected get %+v %q", got, body)
	}
	if _, err := s.Put(ctx, "other/y.json", bytes.NewBufferString("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, err := s.List(ctx, "assessments/")
	if err != nil || len(list) != 1 || list[0].Key != "assessments/x/20240101T000000Z.json" {
		t.Fatalf("list: %+v %v", list, err)
	}
	url, err := s.PresignURL(ctx, "other/y.json", core.SignedURLOptions{})
	if err != nil || !strings.HasPrefix(url, "file://") {
		t.Fatalf("presign: %q %v", url, err)
	}
	if _, err := s.PresignURL(ctx, "other/y.json", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
	ok, err := s.Delete(ctx, "other/y.json")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := os.Stat(filepath.Join(root, "other", "y.json"+sidecarSuffix)); !os.IsNotExist(err) {
		t.Fatalf("expected sidecar removed, got %v", err)
	}
	if ok, _ := s.Delete(ctx, "other/y.json"); ok {
		t.Fatalf("expected missing delete to report false")
	}
	if _, err := s.Head(ctx, "other/y.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFilesystemRejectsBadKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "  ", "/abs", "../escape", "a/../../b", "x" + sidecarSuffix} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected rejection for %q", key)
		}
	}
}

func TestFilesystemListFailsOnCorruptSidecar(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "bad"+sidecarSuffix), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.List(context.Background(), ""); err == nil {
		t.Fatalf("expected corrupt sidecar to fail listing")
	}
}
