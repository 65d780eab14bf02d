package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/index"
	"github.com/odvcencio/gitlet/pkg/object"
)

func (r *Repo) indexPath() string {
	return filepath.Join(r.Dir, "index")
}

// ReadStaging loads the staging area from .gitlet/index and installs the
// HEAD commit's tracked map as its comparison base. A missing index file
// is an empty staging area.
func (r *Repo) ReadStaging() (*index.Index, error) {
	_, head, err := r.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("read staging: %w", err)
	}

	ix := index.New()
	data, err := os.ReadFile(r.indexPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read staging: %w", err)
	default:
		if ix, err = index.Unmarshal(data); err != nil {
			return nil, fmt.Errorf("read staging: %w", err)
		}
	}
	ix.SetTracked(head.Tracked)
	return ix, nil
}

// WriteStaging atomically writes the staging area to .gitlet/index.
func (r *Repo) WriteStaging(ix *index.Index) error {
	data, err := index.Marshal(ix)
	if err != nil {
		return fmt.Errorf("write staging: %w", err)
	}
	if err := writeFileAtomic(r.Dir, r.indexPath(), data); err != nil {
		return fmt.Errorf("write staging: %w", err)
	}
	return nil
}

// ResolvePath converts a user-supplied path into a tracked path. Relative
// paths are taken from the working-tree root; absolute paths must lie
// inside it.
func (r *Repo) ResolvePath(p string) (object.Path, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", fmt.Errorf("%w: %q", object.ErrInvalidPath, p)
		}
		p = rel
	}
	tp, err := object.NewPath(p)
	if err != nil {
		return "", err
	}
	if tp == DirName || strings.HasPrefix(string(tp), DirName+"/") {
		return "", fmt.Errorf("%w: %q is inside %s", object.ErrInvalidPath, p, DirName)
	}
	return tp, nil
}

// Add stages the working-tree content of path. It reports whether the
// staging area changed; staging a file identical to HEAD is a no-op.
func (r *Repo) Add(path string) (bool, error) {
	p, err := r.ResolvePath(path)
	if err != nil {
		return false, err
	}
	content, ok, err := r.readWorkFile(p)
	if err != nil {
		return false, fmt.Errorf("add: %w", err)
	}
	if !ok {
		return false, ErrFileNotFound
	}

	ix, err := r.ReadStaging()
	if err != nil {
		return false, fmt.Errorf("add: %w", err)
	}
	changed, err := ix.Add(p, content, r.Store)
	if err != nil {
		return false, fmt.Errorf("add: store %s: %w", p, err)
	}
	if err := r.WriteStaging(ix); err != nil {
		return false, fmt.Errorf("add: %w", err)
	}
	r.log.Debug("add", "path", p, "changed", changed)
	return changed, nil
}

// Remove unstages path, or stages a tracked path for removal and deletes
// it from the working tree.
func (r *Repo) Remove(path string) error {
	p, err := r.ResolvePath(path)
	if err != nil {
		return err
	}
	ix, err := r.ReadStaging()
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}

	switch ix.Remove(p) {
	case index.RemoveNothing:
		return ErrNothingToRemove
	case index.RemoveStaged:
		if err := r.deleteWorkFile(p); err != nil {
			return fmt.Errorf("rm: %w", err)
		}
	}
	if err := r.WriteStaging(ix); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	r.log.Debug("rm", "path", p)
	return nil
}
