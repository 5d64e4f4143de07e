package snapshot

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/slices"

	"github.com/keshon/litterbox/internal/fsio"
	"github.com/keshon/litterbox/internal/ignore"
)

// Snapshot is the set of entries under a root directory at one instant.
// Paths are slash-separated, relative to Root, sorted, and cover files,
// directories and symlinks alike. Immutable once taken.
type Snapshot struct {
	Root  string   `json:"root"`
	ID    string   `json:"id"`
	Paths []string `json:"paths"`
}

// WalkError reports a failed directory walk. The snapshot it would have
// produced is unusable; the next Take starts fresh.
type WalkError struct {
	Root string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("snapshot walk of %q failed: %v", e.Root, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }

// Take enumerates every entry under root and records it relative to root.
// Entries matched by ign are skipped; ignored directories are not descended
// into. Symlinks are recorded where they appear and never followed.
func Take(root string, ign *ignore.Matcher) (*Snapshot, error) {
	root = filepath.Clean(root)

	var paths []string
	err := fsio.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if ign != nil && ign.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, &WalkError{Root: root, Err: err}
	}

	slices.Sort(paths)

	return &Snapshot{
		Root:  root,
		ID:    fingerprint(paths),
		Paths: paths,
	}, nil
}

// fingerprint hashes the sorted path list so two snapshots of identical
// trees compare equal without walking both sets.
func fingerprint(paths []string) string {
	data := []byte(strings.Join(paths, "\n"))
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
}

// Len returns the number of entries in the snapshot.
func (s *Snapshot) Len() int { return len(s.Paths) }

// Has reports whether the snapshot contains the given relative path.
func (s *Snapshot) Has(path string) bool {
	_, ok := slices.BinarySearch(s.Paths, filepath.ToSlash(path))
	return ok
}
