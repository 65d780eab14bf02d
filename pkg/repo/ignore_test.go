package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

func TestIgnoreChecker(t *testing.T) {
	dir := t.TempDir()
	rules := "# comment\n*.tmp\nbuild/\n!keep.tmp\n/rooted.txt\n"
	if err := os.WriteFile(filepath.Join(dir, IgnoreFile), []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}
	ic, err := NewIgnoreChecker(dir)
	if err != nil {
		t.Fatalf("NewIgnoreChecker: %v", err)
	}

	tests := []struct {
		path  object.Path
		isDir bool
		want  bool
	}{
		{".gitlet", true, true},
		{".gitlet/HEAD", false, true},
		{"a.tmp", false, true},
		{"sub/a.tmp", false, true},
		{"keep.tmp", false, false},
		{"build", true, true},
		{"rooted.txt", false, true},
		{"main.go", false, false},
	}
	for _, tt := range tests {
		if got := ic.IsIgnored(tt.path, tt.isDir); got != tt.want {
			t.Errorf("IsIgnored(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
		}
	}
}

func TestIgnoreChecker_NoFile(t *testing.T) {
	ic, err := NewIgnoreChecker(t.TempDir())
	if err != nil {
		t.Fatalf("NewIgnoreChecker: %v", err)
	}
	if ic.IsIgnored("anything.txt", false) {
		t.Error("nothing but .gitlet should be ignored without an ignore file")
	}
	if !ic.IsIgnored(".gitlet", true) {
		t.Error(".gitlet must always be ignored")
	}
}

func TestWorktreeFiles_SkipsMetadataAndIgnored(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, IgnoreFile, "*.o\n")
	writeFile(t, r, "src/main.c", "int main;")
	writeFile(t, r, "src/main.o", "binary")

	got, err := r.worktreeFiles()
	if err != nil {
		t.Fatalf("worktreeFiles: %v", err)
	}
	want := []object.Path{IgnoreFile, "src/main.c"}
	if len(got) != len(want) {
		t.Fatalf("worktreeFiles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("worktreeFiles[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
