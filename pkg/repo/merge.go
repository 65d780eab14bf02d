package repo

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/index"
	"github.com/odvcencio/gitlet/pkg/merge"
	"github.com/odvcencio/gitlet/pkg/object"
)

// MergeOutcome says which of the three merge paths was taken.
type MergeOutcome int

const (
	// AlreadyUpToDate means the given branch is an ancestor of the current
	// one; nothing changed.
	AlreadyUpToDate MergeOutcome = iota
	// FastForward means the current branch moved to the given branch's head.
	FastForward
	// Merged means a two-parent merge commit was written.
	Merged
)

func (o MergeOutcome) String() string {
	switch o {
	case AlreadyUpToDate:
		return "already-up-to-date"
	case FastForward:
		return "fast-forward"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// MergeReport describes a completed merge.
type MergeReport struct {
	Outcome      MergeOutcome
	Current      string
	Given        string
	Split        object.Hash
	Commit       object.Hash // merge commit, or the new head after a fast-forward
	HasConflicts bool
	Actions      []merge.Action
}

// Merge merges the head of branch into the current branch.
//
// Preconditions are checked before anything is written: a clean staging
// area, an existing branch other than the current one, and no untracked
// file that the given branch would overwrite.
func (r *Repo) Merge(branch string) (*MergeReport, error) {
	ix, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if !ix.IsClean() {
		return nil, ErrUncommitted
	}
	otherID, err := r.ResolveBranch(branch)
	if errors.Is(err, ErrNoSuchBranch) {
		return nil, ErrBranchNotFound
	} else if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if current == branch {
		return nil, ErrMergeSelf
	}

	currentID, err := r.HeadID()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	headCommit, err := r.ReadCommit(currentID)
	if err != nil {
		return nil, err
	}
	otherCommit, err := r.ReadCommit(otherID)
	if err != nil {
		return nil, err
	}
	if err := r.checkUntracked(ix, otherCommit.Tracked); err != nil {
		return nil, err
	}

	split, err := r.FindSplit(currentID, otherID)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	report := &MergeReport{Current: current, Given: branch, Split: split}

	switch split {
	case otherID:
		report.Outcome = AlreadyUpToDate
		report.Commit = currentID
		return report, nil
	case currentID:
		if err := r.restore(ix, otherCommit.Tracked); err != nil {
			return nil, fmt.Errorf("merge: fast-forward: %w", err)
		}
		if err := r.UpdateBranch(current, otherID, "merge "+branch+": fast-forward"); err != nil {
			return nil, fmt.Errorf("merge: fast-forward: %w", err)
		}
		if err := r.WriteStaging(ix); err != nil {
			return nil, fmt.Errorf("merge: fast-forward: %w", err)
		}
		report.Outcome = FastForward
		report.Commit = otherID
		return report, nil
	}

	splitCommit, err := r.ReadCommit(split)
	if err != nil {
		return nil, err
	}
	report.Actions = merge.Classify(splitCommit.Tracked, headCommit.Tracked, otherCommit.Tracked)
	for _, a := range report.Actions {
		conflict, err := r.applyMergeAction(ix, a)
		if err != nil {
			return nil, fmt.Errorf("merge: %s: %w", a.Path, err)
		}
		report.HasConflicts = report.HasConflicts || conflict
	}

	msg := fmt.Sprintf("Merged %s into %s.", branch, current)
	id, err := r.commitStaged(ix, msg, []object.Hash{currentID, otherID})
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	report.Outcome = Merged
	report.Commit = id
	return report, nil
}

// applyMergeAction carries out one classified path through the working
// tree and ix. It reports whether the path conflicted.
func (r *Repo) applyMergeAction(ix *index.Index, a merge.Action) (bool, error) {
	switch a.Kind {
	case merge.Delete:
		if ix.Remove(a.Path) == index.RemoveStaged {
			if err := r.deleteWorkFile(a.Path); err != nil {
				return false, err
			}
		}
	case merge.TakeOther:
		data, err := r.blobData(a.Theirs)
		if err != nil {
			return false, err
		}
		if err := r.stageContent(ix, a.Path, data); err != nil {
			return false, err
		}
	case merge.Conflict:
		ours, err := r.blobData(a.Ours)
		if err != nil {
			return false, err
		}
		theirs, err := r.blobData(a.Theirs)
		if err != nil {
			return false, err
		}
		if err := r.stageContent(ix, a.Path, merge.RenderConflict(ours, theirs)); err != nil {
			return false, err
		}
		r.log.Debug("merge conflict", "path", a.Path)
		return true, nil
	default:
		return false, nil
	}
	r.log.Debug("merge action", "path", a.Path, "kind", a.Kind)
	return false, nil
}

func (r *Repo) stageContent(ix *index.Index, p object.Path, data []byte) error {
	if err := r.writeWorkFile(p, data); err != nil {
		return err
	}
	if _, err := ix.Add(p, data, r.Store); err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	return nil
}

// blobData returns the content of h; the empty hash is an absent file.
func (r *Repo) blobData(h object.Hash) ([]byte, error) {
	if h == "" {
		return nil, nil
	}
	blob, err := r.Store.ReadBlob(h)
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", h, err)
	}
	return blob.Data, nil
}
