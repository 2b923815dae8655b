package s3

import (
	"context"
	"errors"
	"io"
	"maturity/internal/blob/core"
	"strings"
	"testing"
	"time"
)

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestNewWithStaticCredentials(t *testing.T) {
	s, err := New(context.Background(), Config{Bucket: "b", AccessKeyID: "id", SecretAccessKey: "secret", Endpoint: "http://localhost:9000", PathStyle: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Driver() != core.DriverS3 || s.Bucket() != "b" {
		t.Fatalf("unexpected store %s %s", s.Driver(), s.Bucket())
	}
}

func TestMockLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMockForTests()
	payload := `{"id":"abc"}`
	info, err := s.Put(ctx, "assessments/abc/1.json", strings.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"organization": "Acme"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) || info.ContentType != "application/json" || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Metadata["organization"] != "Acme" {
		t.Fatalf("metadata not round tripped: %+v", info.Metadata)
	}
	if _, err := s.Put(ctx, "assessments/abc/1.json", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	_, rc, err := s.Get(ctx, "assessments/abc/1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != payload {
		t.Fatalf("body %q", body)
	}
	if _, err := s.Put(ctx, "assessments/abc/2.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	list, err := s.List(ctx, "assessments/abc/")
	if err != nil || len(list) != 2 || list[0].Key != "assessments/abc/1.json" {
		t.Fatalf("list: %+v %v", list, err)
	}
	url, err := s.PresignURL(ctx, "assessments/abc/1.json", core.SignedURLOptions{Expiry: time.Minute})
	if err != nil || !strings.Contains(url, "assessments/abc/1.json") {
		t.Fatalf("presign: %q %v", url, err)
	}
	if _, err := s.PresignURL(ctx, "k", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if ok, err := s.Delete(ctx, "assessments/abc/2.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := s.Delete(ctx, "assessments/abc/2.json"); err != nil || ok {
		t.Fatalf("delete missing: %v %v", ok, err)
	}
	if _, err := s.Head(ctx, "assessments/abc/2.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecodeChunked(t *testing.T) {
	got, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:abc\r\n\r\n"))
	if !ok || string(got) != "hello" {
		t.Fatalf("decode: %q %v", got, ok)
	}
	if _, ok := decodeChunked([]byte("plain body")); ok {
		t.Fatalf("expected plain body to pass through")
	}
}
