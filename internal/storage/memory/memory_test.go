package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, found, err := s.Get(ctx, "k"); found || err != nil {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}

	in := []byte("hello")
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'j'

	got, found, err := s.Get(ctx, "k")
	if err != nil || !found || string(got) != "hello" {
		t.Fatalf("unexpected get: %q found=%v err=%v", got, found, err)
	}
	got[0] = 'x'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "hello" {
		t.Fatalf("stored value was aliased: %q", again)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d keys", s.Len())
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"x":1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewFromFiles(dir, "state", "missing")
	if s.Len() != 1 {
		t.Fatalf("expected 1 seeded key, got %d", s.Len())
	}
	v, found, _ := s.Get(context.Background(), "state")
	if !found || string(v) != `{"x":1}` {
		t.Fatalf("unexpected seed %q found=%v", v, found)
	}
}
