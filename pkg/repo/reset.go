package repo

import "fmt"

// Reset restores the commit named by prefix into the working tree, clears
// the staging area and moves the current branch to it. HEAD keeps naming
// the same branch.
func (r *Repo) Reset(prefix string) error {
	id, err := r.ResolveCommit(prefix)
	if err != nil {
		return err
	}
	c, err := r.ReadCommit(id)
	if err != nil {
		return err
	}
	branch, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	ix, err := r.ReadStaging()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.checkUntracked(ix, c.Tracked); err != nil {
		return err
	}
	if err := r.restore(ix, c.Tracked); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.UpdateBranch(branch, id, "reset: moving to "+string(id)); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.WriteStaging(ix); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
