package memory

import (
	"context"
	"errors"
	"testing"
)

func TestStoreLoadSave(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	if _, ok, err := store.Load(ctx, "k"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	payload := []byte(`{"a":1}`)
	if err := store.Save(ctx, "k", payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'x'
	got, ok, err := store.Load(ctx, "k")
	if err != nil || !ok || string(got) != `{"a":1}` {
		t.Fatalf("load: %q %v %v", got, ok, err)
	}
	got[0] = 'y'
	again, _, _ := store.Load(ctx, "k")
	if string(again) != `{"a":1}` {
		t.Fatalf("stored payload aliased caller buffer: %q", again)
	}
	if err := store.Save(ctx, "k", []byte("2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _, _ := store.Load(ctx, "k"); string(got) != "2" {
		t.Fatalf("expected overwrite, got %q", got)
	}
	if store.Saves() != 2 {
		t.Fatalf("expected 2 saves, got %d", store.Saves())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStoreInjectedFailures(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	quota := errors.New("quota exceeded")
	store.FailSaves(quota)
	if err := store.Save(ctx, "k", []byte("v")); !errors.Is(err, quota) {
		t.Fatalf("expected quota error, got %v", err)
	}
	store.FailSaves(nil)
	if err := store.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("save after restore: %v", err)
	}
	store.FailLoads(quota)
	if _, _, err := store.Load(ctx, "k"); !errors.Is(err, quota) {
		t.Fatalf("expected load error, got %v", err)
	}
	if store.Saves() != 1 {
		t.Fatalf("failed saves must not count, got %d", store.Saves())
	}
}
