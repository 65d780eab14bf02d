package repo

import (
	"fmt"

	"github.com/hashicorp/go-set/v2"

	"github.com/odvcencio/gitlet/pkg/index"
	"github.com/odvcencio/gitlet/pkg/object"
)

// CheckoutFile overwrites path in the working tree with its HEAD version.
// The staging area is not changed.
func (r *Repo) CheckoutFile(path string) error {
	head, err := r.HeadID()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return r.checkoutFileFrom(head, path)
}

// CheckoutFileAt overwrites path with its version in the commit named by a
// full or abbreviated id.
func (r *Repo) CheckoutFileAt(prefix, path string) error {
	id, err := r.ResolveCommit(prefix)
	if err != nil {
		return err
	}
	return r.checkoutFileFrom(id, path)
}

func (r *Repo) checkoutFileFrom(id object.Hash, path string) error {
	p, err := r.ResolvePath(path)
	if err != nil {
		return err
	}
	c, err := r.ReadCommit(id)
	if err != nil {
		return err
	}
	h, ok := c.Tracked[p]
	if !ok {
		return ErrFileNotInCommit
	}
	blob, err := r.Store.ReadBlob(h)
	if err != nil {
		return fmt.Errorf("checkout: blob %s: %w", h, err)
	}
	if err := r.writeWorkFile(p, blob.Data); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	r.log.Debug("checked out file", "path", p, "commit", id)
	return nil
}

// CheckoutBranch restores the head commit of name into the working tree,
// clears the staging area and makes name the current branch.
func (r *Repo) CheckoutBranch(name string) error {
	target, err := r.ResolveBranch(name)
	if err != nil {
		return err
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if current == name {
		return ErrAlreadyOnBranch
	}

	c, err := r.ReadCommit(target)
	if err != nil {
		return err
	}
	ix, err := r.ReadStaging()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.checkUntracked(ix, c.Tracked); err != nil {
		return err
	}
	if err := r.restore(ix, c.Tracked); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.setHead(name); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.WriteStaging(ix); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// untrackedFiles lists non-ignored working files that are neither tracked
// by HEAD nor staged for addition, plus tracked files staged for removal.
func (r *Repo) untrackedFiles(ix *index.Index) ([]object.Path, error) {
	files, err := r.worktreeFiles()
	if err != nil {
		return nil, err
	}
	var out []object.Path
	for _, p := range files {
		_, tracked := ix.Tracked()[p]
		_, staged := ix.Staged(p)
		if (!tracked && !staged) || ix.IsRemoved(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// checkUntracked fails when restoring target would overwrite an untracked
// working file with different content. Every path target names is looked up
// directly, so ignore rules do not exempt a file. It mutates nothing.
func (r *Repo) checkUntracked(ix *index.Index, target object.TrackedMap) error {
	for _, p := range target.Paths() {
		_, tracked := ix.Tracked()[p]
		_, staged := ix.Staged(p)
		if (tracked || staged) && !ix.IsRemoved(p) {
			continue
		}
		content, present, err := r.readWorkFile(p)
		if err != nil {
			return fmt.Errorf("untracked check: %w", err)
		}
		if present && object.HashBytes(content) != target[p] {
			r.log.Debug("untracked file in the way", "path", p)
			return ErrUntrackedInWay
		}
	}
	return nil
}

// restore replaces the files tracked by HEAD or staged for addition with
// the contents of target, then clears ix. Untracked files that target does
// not name are left alone.
func (r *Repo) restore(ix *index.Index, target object.TrackedMap) error {
	owned := set.From(ix.Tracked().Paths())
	owned.InsertSlice(ix.AddedPaths())
	for _, p := range owned.Slice() {
		if _, keep := target[p]; keep {
			continue
		}
		if err := r.deleteWorkFile(p); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	for _, p := range target.Paths() {
		blob, err := r.Store.ReadBlob(target[p])
		if err != nil {
			return fmt.Errorf("restore: %s: %w", p, err)
		}
		if err := r.writeWorkFile(p, blob.Data); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	ix.Clear()
	r.log.Debug("restored snapshot", "files", len(target), "removed", owned.Size())
	return nil
}
