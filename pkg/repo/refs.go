package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

const headRefPrefix = "ref: refs/heads/"

func (r *Repo) headPath() string {
	return filepath.Join(r.Dir, "HEAD")
}

func (r *Repo) branchPath(name string) string {
	return filepath.Join(r.Dir, "refs", "heads", filepath.FromSlash(name))
}

// validBranchName rejects names that cannot live under refs/heads.
func validBranchName(name string) error {
	if name == "" || strings.TrimSpace(name) != name || strings.ContainsAny(name, " \t\\:") || strings.HasPrefix(name, "-") {
		return ErrInvalidBranch
	}
	p, err := object.NewPath(name)
	if err != nil || string(p) != name {
		return ErrInvalidBranch
	}
	return nil
}

// CurrentBranch reads .gitlet/HEAD and returns the branch it names.
func (r *Repo) CurrentBranch() (string, error) {
	data, err := os.ReadFile(r.headPath())
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	if !strings.HasPrefix(content, headRefPrefix) {
		return "", ErrDetachedHead
	}
	return strings.TrimPrefix(content, headRefPrefix), nil
}

func (r *Repo) setHead(branch string) error {
	if err := writeFileAtomic(r.Dir, r.headPath(), []byte(headRefPrefix+branch+"\n")); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	r.log.Debug("HEAD moved", "branch", branch)
	return nil
}

// HeadID resolves HEAD to the commit id of the current branch.
func (r *Repo) HeadID() (object.Hash, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return "", err
	}
	return r.ResolveBranch(branch)
}

// HeadCommit loads the commit HEAD points at.
func (r *Repo) HeadCommit() (object.Hash, *object.Commit, error) {
	id, err := r.HeadID()
	if err != nil {
		return "", nil, err
	}
	c, err := r.ReadCommit(id)
	if err != nil {
		return "", nil, err
	}
	return id, c, nil
}

// ResolveBranch returns the commit a branch points at, or ErrNoSuchBranch.
func (r *Repo) ResolveBranch(name string) (object.Hash, error) {
	if validBranchName(name) != nil {
		return "", ErrNoSuchBranch
	}
	data, err := os.ReadFile(r.branchPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoSuchBranch
		}
		return "", fmt.Errorf("resolve branch %q: %w", name, err)
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}

// BranchExists reports whether refs/heads/<name> exists.
func (r *Repo) BranchExists(name string) bool {
	_, err := r.ResolveBranch(name)
	return err == nil
}

// UpdateBranch points a branch at h, creating it if needed, and appends the
// move to the branch's reflog.
func (r *Repo) UpdateBranch(name string, h object.Hash, reason string) error {
	if err := validBranchName(name); err != nil {
		return fmt.Errorf("update branch %q: %w", name, err)
	}
	refPath := r.branchPath(name)
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("update branch %q: mkdir: %w", name, err)
	}

	old, err := r.ResolveBranch(name)
	if err != nil && !errors.Is(err, ErrNoSuchBranch) {
		return err
	}

	if err := writeFileAtomic(filepath.Dir(refPath), refPath, []byte(string(h)+"\n")); err != nil {
		return fmt.Errorf("update branch %q: %w", name, err)
	}
	if err := r.appendReflog(name, old, h, reason); err != nil {
		return fmt.Errorf("update branch %q: %w", name, err)
	}
	r.log.Debug("branch moved", "branch", name, "old", old, "new", h, "reason", reason)
	return nil
}

// CreateBranch creates a branch pointing at the HEAD commit. HEAD does not
// move.
func (r *Repo) CreateBranch(name string) error {
	if err := validBranchName(name); err != nil {
		return err
	}
	if r.BranchExists(name) {
		return ErrBranchExists
	}
	head, err := r.HeadID()
	if err != nil {
		return err
	}
	return r.UpdateBranch(name, head, "branch: created from HEAD")
}

// DeleteBranch removes the branch pointer only; its commits stay in the
// store.
func (r *Repo) DeleteBranch(name string) error {
	if !r.BranchExists(name) {
		return ErrBranchNotFound
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if current == name {
		return ErrRemoveCurrent
	}
	if err := os.Remove(r.branchPath(name)); err != nil {
		return fmt.Errorf("delete branch %q: %w", name, err)
	}
	removeEmptyParents(filepath.Join(r.Dir, "refs", "heads"), filepath.Dir(r.branchPath(name)))
	if err := os.Remove(r.reflogPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete branch %q: reflog: %w", name, err)
	}
	r.log.Debug("branch deleted", "branch", name)
	return nil
}

// ListBranches returns every branch name in byte-wise order.
func (r *Repo) ListBranches() ([]string, error) {
	root := filepath.Join(r.Dir, "refs", "heads")
	var names []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// removeEmptyParents deletes empty directories from dir upward, stopping
// at stop.
func removeEmptyParents(stop, dir string) {
	stop = filepath.Clean(stop)
	for dir = filepath.Clean(dir); dir != stop && strings.HasPrefix(dir, stop+string(filepath.Separator)); dir = filepath.Dir(dir) {
		if err := os.Remove(dir); err != nil {
			return
		}
	}
}
