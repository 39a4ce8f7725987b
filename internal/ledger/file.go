package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the ledger as one JSON document. Writes go to a
// temporary file in the same directory and are renamed over the snapshot,
// so readers never observe a partial write.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (map[string]Player, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]Player), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	players := make(map[string]Player)
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return players, nil
}

func (s *FileStore) Save(ctx context.Context, players map[string]Player) error {
	data, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Health(ctx context.Context) map[string]string {
	stats := map[string]string{
		"backend": "file",
		"path":    s.path,
	}
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}
	stats["status"] = "up"
	return stats
}

func (s *FileStore) Close() error {
	return nil
}
