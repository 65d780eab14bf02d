package repo

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ChangeKind classifies an unstaged modification.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// Modification is a working-tree change the staging area does not know of.
type Modification struct {
	Path object.Path
	Kind ChangeKind
}

// Status is the state shown by the status command. Every list is sorted.
type Status struct {
	Current   string
	Branches  []string
	Staged    []object.Path
	Removed   []object.Path
	Modified  []Modification
	Untracked []object.Path
}

// Status compares HEAD, the staging area and the working tree.
func (r *Repo) Status() (*Status, error) {
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	branches, err := r.ListBranches()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	ix, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	untracked, err := r.untrackedFiles(ix)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	st := &Status{
		Current:   current,
		Branches:  branches,
		Staged:    ix.AddedPaths(),
		Removed:   ix.RemovedPaths(),
		Untracked: untracked,
	}

	candidates := lo.Uniq(append(ix.Tracked().Paths(), st.Staged...))
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	for _, p := range candidates {
		if ix.IsRemoved(p) {
			continue
		}
		want, staged := ix.Staged(p)
		if !staged {
			want = ix.Tracked()[p]
		}
		content, ok, err := r.readWorkFile(p)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		if !ok {
			st.Modified = append(st.Modified, Modification{Path: p, Kind: ChangeDeleted})
			continue
		}
		if object.HashBytes(content) != want {
			st.Modified = append(st.Modified, Modification{Path: p, Kind: ChangeModified})
		}
	}
	return st, nil
}
