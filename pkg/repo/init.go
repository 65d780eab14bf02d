package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/index"
	"github.com/odvcencio/gitlet/pkg/object"
)

// Init creates a new Gitlet repository at path: the .gitlet/ directory
// structure, config.toml, the root commit, the branch named by
// core.default_branch pointing at it, HEAD and an empty index.
func Init(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	r := newRepo(abs, opts)

	if _, err := os.Stat(r.Dir); err == nil {
		return nil, ErrAlreadyInitialized
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("init: stat: %w", err)
	}
	if err := r.Config.Validate(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	dirs := []string{
		filepath.Join(r.Dir, string(object.KindCommit)),
		filepath.Join(r.Dir, string(object.KindBlob)),
		filepath.Join(r.Dir, "refs", "heads"),
		filepath.Join(r.Dir, "logs", "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	if err := r.WriteConfig(r.Config); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	root, err := r.Store.WriteCommit(object.InitialCommit())
	if err != nil {
		return nil, fmt.Errorf("init: write root commit: %w", err)
	}

	branch := r.Config.Core.DefaultBranch
	if err := r.UpdateBranch(branch, root, "init"); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.setHead(branch); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.WriteStaging(index.New()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.log.Debug("initialized repository", "dir", r.Dir, "branch", branch, "root", root)
	return r, nil
}

// Open searches upward from path for a .gitlet/ directory and opens the
// repository found there.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		info, err := os.Stat(filepath.Join(cur, DirName))
		if err == nil && info.IsDir() {
			r := newRepo(cur, opts)
			cfg, err := r.ReadConfig()
			if err != nil {
				return nil, err
			}
			r.Config = cfg
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, ErrNotInitialized
		}
		cur = parent
	}
}
