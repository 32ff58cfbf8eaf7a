package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
)

// FileSnapshotStore persists the latest-rates snapshot as a JSON file,
// keeping the frequently rewritten "latest" surface out of the historical
// database entirely.
type FileSnapshotStore struct {
	path string
	mu   sync.Mutex
}

// NewFileSnapshotStore creates a store writing to path.
func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

var _ ports.SnapshotStore = (*FileSnapshotStore)(nil)

// Load reads the current snapshot. A snapshot that does not exist yet is not
// an error; it returns (nil, nil).
func (s *FileSnapshotStore) Load(ctx context.Context) (*models.LatestSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap models.LatestSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot file: %w", err)
	}
	return &snap, nil
}

// Save atomically replaces the snapshot file via a temp-file rename so
// concurrent readers never observe a partial write.
func (s *FileSnapshotStore) Save(ctx context.Context, snap models.LatestSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}
