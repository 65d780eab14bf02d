package repo

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-set/v2"
	"github.com/oleiade/lane/v2"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ReadCommit loads a commit by full id. A missing id is ErrNoSuchCommit.
func (r *Repo) ReadCommit(id object.Hash) (*object.Commit, error) {
	c, err := r.Store.ReadCommit(id)
	if err != nil {
		if errors.Is(err, object.ErrObjectNotFound) {
			return nil, ErrNoSuchCommit
		}
		return nil, fmt.Errorf("read commit: %w", err)
	}
	return c, nil
}

// ResolveCommit expands a full or abbreviated commit id.
func (r *Repo) ResolveCommit(prefix string) (object.Hash, error) {
	id, err := r.Store.ResolvePrefix(object.KindCommit, prefix)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, object.ErrPrefixTooShort):
		return "", ErrShortCommitID
	case errors.Is(err, object.ErrAmbiguousPrefix):
		return "", ErrAmbiguousCommit
	case errors.Is(err, object.ErrObjectNotFound):
		return "", ErrNoSuchCommit
	default:
		return "", fmt.Errorf("resolve commit: %w", err)
	}
}

// FindSplit returns the split commit of a and b: the first commit reached
// twice while walking both histories at once, most recent commit first.
// This is a recency-ordered heuristic, not a canonical lowest common
// ancestor; with skewed timestamps it can pick a non-minimal ancestor.
func (r *Repo) FindSplit(a, b object.Hash) (object.Hash, error) {
	if a == b {
		return a, nil
	}

	queue := lane.NewMaxPriorityQueue[object.Hash, int64]()
	visited := set.New[object.Hash](16)
	for _, id := range []object.Hash{a, b} {
		prio, err := r.commitPriority(id)
		if err != nil {
			return "", fmt.Errorf("find split: %w", err)
		}
		queue.Push(id, prio)
		visited.Insert(id)
	}

	for !queue.Empty() {
		id, _, ok := queue.Pop()
		if !ok {
			break
		}
		c, err := r.ReadCommit(id)
		if err != nil {
			return "", fmt.Errorf("find split: %s: %w", id, err)
		}
		for _, parent := range c.Parents {
			if visited.Contains(parent) {
				r.log.Debug("split found", "a", a, "b", b, "split", parent)
				return parent, nil
			}
			prio, err := r.commitPriority(parent)
			if err != nil {
				return "", fmt.Errorf("find split: %w", err)
			}
			queue.Push(parent, prio)
			visited.Insert(parent)
		}
	}
	return "", ErrNoSplit
}

// IsAncestor reports whether id is the split commit of id and of.
func (r *Repo) IsAncestor(id, of object.Hash) (bool, error) {
	split, err := r.FindSplit(id, of)
	if err != nil {
		return false, err
	}
	return split == id, nil
}

func (r *Repo) commitPriority(id object.Hash) (int64, error) {
	c, err := r.ReadCommit(id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", id, err)
	}
	t, err := c.Time()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", id, err)
	}
	return t.Unix(), nil
}
