package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := InputDigest([]byte("module bytes"), "x86_64-linux-gnu")
	want := DiskPayload{Name: "demo", Triple: "x86_64-linux-gnu", IR: "define void @fn.f() {}\n"}
	if err := c.Put(key, &want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got DiskPayload
	ok, err := c.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Name != want.Name || got.IR != want.IR || got.Triple != want.Triple {
		t.Fatalf("payload = %+v", got)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var got DiskPayload
	ok, err := c.Get(InputDigest([]byte("never stored"), "t"), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestDiskCacheStaleSchemaIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}

	key := InputDigest([]byte("m"), "t")
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	stale := DiskPayload{Schema: diskCacheSchemaVersion + 1, IR: "old"}
	raw, err := msgpack.Marshal(&stale)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	var got DiskPayload
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("stale schema must count as a miss")
	}
}

func TestInputDigestSeparatesTriples(t *testing.T) {
	mod := []byte("same module")
	a := InputDigest(mod, "x86_64-linux-gnu")
	b := InputDigest(mod, "aarch64-linux-gnu")
	if a == b {
		t.Fatal("digest must depend on the target triple")
	}
	if a != InputDigest(mod, "x86_64-linux-gnu") {
		t.Fatal("digest must be deterministic")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := InputDigest([]byte("m"), "t")
	if err := c.Put(key, &DiskPayload{IR: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var got DiskPayload
	ok, err := c.Get(key, &got)
	if err != nil || ok {
		t.Fatalf("Get after DropAll = %v, %v", ok, err)
	}
}
