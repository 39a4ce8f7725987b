package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_LoadMissingSnapshot(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "players.json"))

	players, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("missing snapshot loaded %d players", len(players))
	}
}

func TestFileStore_SaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "players.json"))

	want := map[string]Player{
		"u1": {ID: "u1", Nick: "alice", Balance: 1100},
		"u2": {ID: "u2", Nick: "bob", Balance: 10},
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d players, want %d", len(got), len(want))
	}
	for id, p := range want {
		if got[id] != p {
			t.Errorf("player %s = %+v, want %+v", id, got[id], p)
		}
	}
}

func TestFileStore_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "players.json"))

	if err := store.Save(context.Background(), map[string]Player{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "players.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only players.json", names)
	}
}

func TestFileStore_Health(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "players.json"))
	stats := store.Health(context.Background())
	if stats["status"] != "up" {
		t.Errorf("status = %q, want up", stats["status"])
	}
}
