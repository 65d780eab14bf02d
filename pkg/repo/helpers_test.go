package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

// stepClock advances one minute per call so every commit gets a distinct,
// increasing timestamp.
type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	clk := &stepClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	r, err := Init(t.TempDir(), WithClock(clk.now))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func writeFile(t *testing.T, r *Repo, name, content string) {
	t.Helper()
	p := filepath.Join(r.RootDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readFile(t *testing.T, r *Repo, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func fileExists(t *testing.T, r *Repo, name string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(r.RootDir, filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("stat %s: %v", name, err)
	}
	return err == nil
}

func removeFile(t *testing.T, r *Repo, name string) {
	t.Helper()
	if err := os.Remove(filepath.Join(r.RootDir, filepath.FromSlash(name))); err != nil {
		t.Fatalf("remove %s: %v", name, err)
	}
}

func mustAdd(t *testing.T, r *Repo, name string) {
	t.Helper()
	if _, err := r.Add(name); err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
}

func mustCommit(t *testing.T, r *Repo, msg string) object.Hash {
	t.Helper()
	id, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return id
}

// commitFiles writes, stages and commits the given files in one commit.
func commitFiles(t *testing.T, r *Repo, msg string, files map[string]string) object.Hash {
	t.Helper()
	for name, content := range files {
		writeFile(t, r, name, content)
		mustAdd(t, r, name)
	}
	return mustCommit(t, r, msg)
}

func headID(t *testing.T, r *Repo) object.Hash {
	t.Helper()
	id, err := r.HeadID()
	if err != nil {
		t.Fatalf("HeadID: %v", err)
	}
	return id
}

func mustCheckout(t *testing.T, r *Repo, branch string) {
	t.Helper()
	if err := r.CheckoutBranch(branch); err != nil {
		t.Fatalf("CheckoutBranch(%s): %v", branch, err)
	}
}

func mustBranch(t *testing.T, r *Repo, name string) {
	t.Helper()
	if err := r.CreateBranch(name); err != nil {
		t.Fatalf("CreateBranch(%s): %v", name, err)
	}
}

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("%s is a directory, expected a file", path)
	}
}

