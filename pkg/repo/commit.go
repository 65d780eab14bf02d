package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/index"
	"github.com/odvcencio/gitlet/pkg/object"
)

// LogEntry pairs a commit with its id.
type LogEntry struct {
	ID     object.Hash
	Commit *object.Commit
}

// Commit folds the staging area into a new commit on the current branch.
func (r *Repo) Commit(message string) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	ix, err := r.ReadStaging()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if ix.IsClean() {
		return "", ErrNothingStaged
	}
	head, err := r.HeadID()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return r.commitStaged(ix, message, []object.Hash{head})
}

// commitStaged writes a commit whose tracked map is ix folded, saves the
// cleared index and advances the current branch. It does not require
// anything to be staged.
func (r *Repo) commitStaged(ix *index.Index, message string, parents []object.Hash) (object.Hash, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	c := object.NewCommit(r.now(), message, parents, ix.Fold())
	id, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: write: %w", err)
	}
	if err := r.WriteStaging(ix); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	reason := "commit: " + firstLine(message)
	if len(parents) > 1 {
		reason = "merge: " + firstLine(message)
	}
	if err := r.UpdateBranch(branch, id, reason); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	r.log.Debug("committed", "id", id, "branch", branch, "files", len(c.Tracked), "parents", len(parents))
	return id, nil
}

// Log walks first parents from HEAD back to the root commit.
func (r *Repo) Log() ([]LogEntry, error) {
	id, err := r.HeadID()
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	var out []LogEntry
	for {
		c, err := r.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("log: %s: %w", id, err)
		}
		out = append(out, LogEntry{ID: id, Commit: c})
		if len(c.Parents) == 0 {
			return out, nil
		}
		id = c.Parents[0]
	}
}

// GlobalLog returns every stored commit, newest first. Commits sharing a
// timestamp are ordered by id.
func (r *Repo) GlobalLog() ([]LogEntry, error) {
	ids, err := r.Store.List(object.KindCommit)
	if err != nil {
		return nil, fmt.Errorf("global-log: %w", err)
	}
	out := make([]LogEntry, 0, len(ids))
	stamps := make(map[object.Hash]int64, len(ids))
	for _, id := range ids {
		c, err := r.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("global-log: %s: %w", id, err)
		}
		t, err := c.Time()
		if err != nil {
			return nil, fmt.Errorf("global-log: %s: %w", id, err)
		}
		stamps[id] = t.Unix()
		out = append(out, LogEntry{ID: id, Commit: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := stamps[out[i].ID], stamps[out[j].ID]
		if ti != tj {
			return ti > tj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Find returns the ids of every commit whose message is exactly message,
// sorted.
func (r *Repo) Find(message string) ([]object.Hash, error) {
	ids, err := r.Store.List(object.KindCommit)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	var out []object.Hash
	for _, id := range ids {
		c, err := r.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("find: %s: %w", id, err)
		}
		if c.Message == message {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMatchingCommit
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
