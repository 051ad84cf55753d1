package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q, want payload", data)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "short"); err != nil || ok {
		t.Fatalf("expired entry: ok %v, err %v; want miss", ok, err)
	}
	// The expired entry is removed from disk, not just skipped.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d files remain after expired read, want 0", len(entries))
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("bad"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(ctx, "bad"); err != nil || ok {
		t.Fatalf("corrupt entry: ok %v, err %v; want silent miss", ok, err)
	}
	if _, err := os.Stat(fc.path("bad")); !os.IsNotExist(err) {
		t.Error("corrupt entry left on disk")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("entry survives Delete")
	}
	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(absent) = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Errorf("null cache returned a hit")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestArtifactKey(t *testing.T) {
	base := ArtifactKey("abc", "svg", 100, 40, 1.0, true)
	if !strings.HasPrefix(base, "artifact:") {
		t.Errorf("key = %q, want artifact: prefix", base)
	}
	if base != ArtifactKey("abc", "svg", 100, 40, 1.0, true) {
		t.Error("identical inputs produced different keys")
	}

	// Every input participates in the key.
	variants := []string{
		ArtifactKey("other", "svg", 100, 40, 1.0, true),
		ArtifactKey("abc", "dot", 100, 40, 1.0, true),
		ArtifactKey("abc", "svg", 200, 40, 1.0, true),
		ArtifactKey("abc", "svg", 100, 80, 1.0, true),
		ArtifactKey("abc", "svg", 100, 40, 2.0, true),
		ArtifactKey("abc", "svg", 100, 40, 1.0, false),
	}
	seen := map[string]bool{base: true}
	for i, v := range variants {
		if seen[v] {
			t.Errorf("variant %d collides with a previous key", i)
		}
		seen[v] = true
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("blueprint"))
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("blueprint")) {
		t.Error("hash is not deterministic")
	}
	if h == Hash([]byte("different")) {
		t.Error("distinct inputs collide")
	}
}

func TestFileCachePathIsSafe(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)

	p := fc.path("artifact:abc/../../etc:svg")
	if filepath.Dir(p) != fc.dir {
		t.Errorf("path %q escapes the cache directory", p)
	}
	if !strings.HasSuffix(p, ".json") {
		t.Errorf("path %q lacks .json suffix", p)
	}
}
