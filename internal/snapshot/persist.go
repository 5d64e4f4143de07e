package snapshot

import (
	"fmt"

	"github.com/keshon/litterbox/internal/fsio"
)

// Save persists the snapshot as JSON, written atomically.
func (s *Snapshot) Save(path string) error {
	if s.ID == "" {
		return fmt.Errorf("invalid snapshot: missing fingerprint")
	}
	return fsio.WriteJSON(path, s)
}

// Load reads a snapshot previously written by Save.
func Load(path string) (*Snapshot, error) {
	var s Snapshot
	if err := fsio.ReadJSON(path, &s); err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", path, err)
	}
	if s.Root == "" || s.ID == "" {
		return nil, fmt.Errorf("snapshot %q is malformed", path)
	}
	return &s, nil
}
