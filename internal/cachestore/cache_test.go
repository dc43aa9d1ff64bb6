package cachestore

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("") // in-memory
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoad_UnknownHashIsEmpty(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	entries, err := store.Load("deadbeef")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries for unknown hash, want 0", len(entries))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	in := map[string]bool{
		"10.0.0.1": true,
		"10.0.0.2": false,
	}
	if err := store.Save("hash-a", in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := store.Load("hash-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 || !out["10.0.0.1"] || out["10.0.0.2"] {
		t.Errorf("Load = %v, want %v", out, in)
	}
}

func TestSave_SnapshotOverwrites(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.Save("hash-a", map[string]bool{"10.0.0.1": true, "10.0.0.9": true}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	// Second save is a wholesale snapshot, not a merge.
	if err := store.Save("hash-a", map[string]bool{"10.0.0.1": false}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	out, err := store.Load("hash-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d entries after snapshot overwrite, want 1", len(out))
	}
	if out["10.0.0.1"] {
		t.Error("overwritten value should be false")
	}
}

func TestSave_HashesIsolated(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.Save("hash-a", map[string]bool{"10.0.0.1": true}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("hash-b", map[string]bool{"10.0.0.2": true}); err != nil {
		t.Fatal(err)
	}

	a, _ := store.Load("hash-a")
	b, _ := store.Load("hash-b")
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("a=%v b=%v, want one entry each", a, b)
	}
	if _, ok := a["10.0.0.2"]; ok {
		t.Error("hash-a must not see hash-b rows")
	}
}

func TestNewStore_OnDisk(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache", "webstat.duckdb")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore on disk: %v", err)
	}
	if err := store.Save("hash-a", map[string]bool{"10.0.0.1": true}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopen: the snapshot must survive the process boundary.
	store2, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store2.Close()
	out, err := store2.Load("hash-a")
	if err != nil {
		t.Fatal(err)
	}
	if !out["10.0.0.1"] {
		t.Errorf("persisted entry missing after reopen: %v", out)
	}
}
