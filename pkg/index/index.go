// Package index implements the staging area: the pending change set
// between the working tree and the next commit.
//
// An Index owns its added map and removed set. The tracked map it compares
// against belongs to the HEAD commit; it is borrowed through SetTracked on
// every load and is never persisted with the index.
package index

import (
	"sort"

	"github.com/hashicorp/go-set/v2"

	"github.com/odvcencio/gitlet/pkg/object"
)

// BlobWriter stores file content and returns its identity.
type BlobWriter interface {
	WriteBlob(data []byte) (object.Hash, error)
}

// RemoveResult tells the caller what Remove did.
type RemoveResult int

const (
	// RemoveNothing means the path was neither staged nor tracked.
	RemoveNothing RemoveResult = iota
	// RemoveUnstaged means a pending addition was dropped.
	RemoveUnstaged
	// RemoveStaged means a tracked path is now staged for removal and its
	// working-tree file should be deleted.
	RemoveStaged
)

// Index is the staging area.
type Index struct {
	added   map[object.Path]object.Hash
	removed *set.Set[object.Path]
	tracked object.TrackedMap
}

// New returns an empty staging area tracking nothing.
func New() *Index {
	return &Index{
		added:   make(map[object.Path]object.Hash),
		removed: set.New[object.Path](8),
		tracked: object.TrackedMap{},
	}
}

// SetTracked installs the HEAD commit's tracked map as the comparison base.
// The map is read, never written.
func (ix *Index) SetTracked(tracked object.TrackedMap) {
	if tracked == nil {
		tracked = object.TrackedMap{}
	}
	ix.tracked = tracked
}

// Tracked returns the borrowed HEAD map.
func (ix *Index) Tracked() object.TrackedMap {
	return ix.tracked
}

// Add reconciles one working-tree file against the tracked map and reports
// whether the pending change set changed.
//
// Cancelling a staged removal by re-adding the committed content reports
// false and leaves the store untouched. Content equal to the tracked
// version is never staged.
func (ix *Index) Add(p object.Path, content []byte, blobs BlobWriter) (bool, error) {
	h := object.HashBytes(content)
	trackedHash, isTracked := ix.tracked[p]

	if ix.removed.Contains(p) && isTracked && trackedHash == h {
		ix.removed.Remove(p)
		return false, nil
	}

	if isTracked && trackedHash == h {
		if _, staged := ix.added[p]; staged {
			delete(ix.added, p)
			return true, nil
		}
		return false, nil
	}

	if prev, staged := ix.added[p]; staged && prev == h {
		return false, nil
	}

	if _, err := blobs.WriteBlob(content); err != nil {
		return false, err
	}
	ix.added[p] = h
	ix.removed.Remove(p)
	return true, nil
}

// Remove unstages a pending addition, or stages a tracked path for removal.
func (ix *Index) Remove(p object.Path) RemoveResult {
	if _, staged := ix.added[p]; staged {
		delete(ix.added, p)
		return RemoveUnstaged
	}
	if _, isTracked := ix.tracked[p]; isTracked {
		ix.removed.Insert(p)
		return RemoveStaged
	}
	return RemoveNothing
}

// IsClean reports whether nothing is staged.
func (ix *Index) IsClean() bool {
	return len(ix.added) == 0 && ix.removed.Size() == 0
}

// Fold applies the pending changes to a copy of the tracked map, clears the
// staging area and returns the result, which becomes the next commit's map.
func (ix *Index) Fold() object.TrackedMap {
	out := ix.tracked.Clone()
	if ix.IsClean() {
		return out
	}
	for p, h := range ix.added {
		out[p] = h
	}
	for _, p := range ix.removed.Slice() {
		delete(out, p)
	}
	ix.Clear()
	return out
}

// Clear discards every pending change without folding it.
func (ix *Index) Clear() {
	ix.added = make(map[object.Path]object.Hash)
	ix.removed = set.New[object.Path](8)
}

// Added returns a copy of the pending additions.
func (ix *Index) Added() map[object.Path]object.Hash {
	out := make(map[object.Path]object.Hash, len(ix.added))
	for p, h := range ix.added {
		out[p] = h
	}
	return out
}

// Staged returns the hash staged for p, if any.
func (ix *Index) Staged(p object.Path) (object.Hash, bool) {
	h, ok := ix.added[p]
	return h, ok
}

// IsRemoved reports whether p is staged for removal.
func (ix *Index) IsRemoved(p object.Path) bool {
	return ix.removed.Contains(p)
}

// AddedPaths returns the pending additions in path order.
func (ix *Index) AddedPaths() []object.Path {
	out := make([]object.Path, 0, len(ix.added))
	for p := range ix.added {
		out = append(out, p)
	}
	sortPaths(out)
	return out
}

// RemovedPaths returns the pending removals in path order.
func (ix *Index) RemovedPaths() []object.Path {
	out := ix.removed.Slice()
	sortPaths(out)
	return out
}

func sortPaths(ps []object.Path) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}
