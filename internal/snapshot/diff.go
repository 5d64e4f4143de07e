package snapshot

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Diff is the symmetric difference of two snapshots of the same root.
// Both slices are sorted.
type Diff struct {
	Created []string
	Deleted []string
}

// Clean reports whether the two snapshots contained the same entry set.
func (d Diff) Clean() bool {
	return len(d.Created) == 0 && len(d.Deleted) == 0
}

// Compare computes what appeared in after and what vanished from before.
// Snapshots of different roots cannot be compared.
func Compare(before, after *Snapshot) (Diff, error) {
	if before.Root != after.Root {
		return Diff{}, fmt.Errorf("comparing snapshot of %q against one of %q", before.Root, after.Root)
	}

	// matching fingerprints mean matching entry sets
	if before.ID == after.ID {
		return Diff{}, nil
	}

	old := make(map[string]struct{}, len(before.Paths))
	for _, p := range before.Paths {
		old[p] = struct{}{}
	}

	var created []string
	for _, p := range after.Paths {
		if _, ok := old[p]; ok {
			delete(old, p)
		} else {
			created = append(created, p)
		}
	}

	deleted := maps.Keys(old)
	slices.Sort(deleted)

	return Diff{Created: created, Deleted: deleted}, nil
}
