package repo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/odvcencio/gitlet/pkg/object"
)

// IgnoreFile is the per-repository ignore file at the working-tree root.
const IgnoreFile = ".gitletignore"

// IgnoreChecker decides which working-tree paths are invisible to status
// and untracked-file scans. The .gitlet directory is always ignored.
type IgnoreChecker struct {
	gi *ignore.GitIgnore
}

// NewIgnoreChecker compiles the built-in rules plus any .gitletignore found
// in root. A missing ignore file is not an error.
func NewIgnoreChecker(root string) (*IgnoreChecker, error) {
	lines := []string{DirName + "/", DirName}
	data, err := os.ReadFile(filepath.Join(root, IgnoreFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", IgnoreFile, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return &IgnoreChecker{gi: ignore.CompileIgnoreLines(lines...)}, nil
}

// IsIgnored reports whether p matches an ignore rule. isDir marks a
// directory so directory-only patterns apply.
func (ic *IgnoreChecker) IsIgnored(p object.Path, isDir bool) bool {
	s := string(p)
	if isDir {
		return ic.gi.MatchesPath(s) || ic.gi.MatchesPath(s+"/")
	}
	return ic.gi.MatchesPath(s)
}

// worktreeFiles returns every regular file under the working tree that is
// not ignored, in path order.
func (r *Repo) worktreeFiles() ([]object.Path, error) {
	ic, err := NewIgnoreChecker(r.RootDir)
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}

	var out []object.Path
	err = filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == r.RootDir {
			return nil
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		p, err := object.NewPath(rel)
		if err != nil {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == DirName || ic.IsIgnored(p, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ic.IsIgnored(p, false) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("worktree: walk: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// readWorkFile returns the content of p, or ok=false when it is absent.
func (r *Repo) readWorkFile(p object.Path) ([]byte, bool, error) {
	data, err := os.ReadFile(r.workPath(p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", p, err)
	}
	return data, true, nil
}

// writeWorkFile writes data to p, creating parent directories.
func (r *Repo) writeWorkFile(p object.Path, data []byte) error {
	dest := r.workPath(p)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("write %s: mkdir: %w", p, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// deleteWorkFile removes p and any directories it leaves empty. A missing
// file is not an error.
func (r *Repo) deleteWorkFile(p object.Path) error {
	dest := r.workPath(p)
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", p, err)
	}
	removeEmptyParents(r.RootDir, filepath.Dir(dest))
	return nil
}
