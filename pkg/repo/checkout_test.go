package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

func TestCheckoutFile_FromHead(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "add", map[string]string{"a.txt": "committed"})
	writeFile(t, r, "a.txt", "scribbled")

	if err := r.CheckoutFile("a.txt"); err != nil {
		t.Fatalf("CheckoutFile: %v", err)
	}
	if got := readFile(t, r, "a.txt"); got != "committed" {
		t.Errorf("a.txt = %q, want committed", got)
	}
	if err := r.CheckoutFile("missing.txt"); !errors.Is(err, ErrFileNotInCommit) {
		t.Errorf("CheckoutFile(missing) error = %v, want ErrFileNotInCommit", err)
	}
}

func TestCheckoutFileAt_Prefix(t *testing.T) {
	r := newTestRepo(t)
	old := commitFiles(t, r, "v1", map[string]string{"a.txt": "one"})
	commitFiles(t, r, "v2", map[string]string{"a.txt": "two"})

	if err := r.CheckoutFileAt(string(old[:6]), "a.txt"); err != nil {
		t.Fatalf("CheckoutFileAt: %v", err)
	}
	if got := readFile(t, r, "a.txt"); got != "one" {
		t.Errorf("a.txt = %q, want one", got)
	}
}

func TestCheckoutFileAt_Errors(t *testing.T) {
	r := newTestRepo(t)
	id := commitFiles(t, r, "v1", map[string]string{"a.txt": "one"})

	tests := []struct {
		name   string
		prefix string
		path   string
		want   error
	}{
		{"short id", "abc", "a.txt", ErrShortCommitID},
		{"unknown id", "0000000000", "a.txt", ErrNoSuchCommit},
		{"parent directory prefix", "..co", "a.txt", ErrNoSuchCommit},
		{"index file prefix", "..in", "a.txt", ErrNoSuchCommit},
		{"file absent", string(id), "b.txt", ErrFileNotInCommit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.CheckoutFileAt(tt.prefix, tt.path); !errors.Is(err, tt.want) {
				t.Fatalf("CheckoutFileAt(%q, %q) error = %v, want %v", tt.prefix, tt.path, err, tt.want)
			}
		})
	}
}

func TestResolveCommit_Ambiguous(t *testing.T) {
	r := newTestRepo(t)

	// Write commits straight to the store until two share a four-character
	// prefix.
	seen := map[string]bool{}
	var prefix string
	for i := 0; i < 20000 && prefix == ""; i++ {
		id, err := r.Store.WriteCommit(object.NewCommit(time.Unix(int64(i), 0), "probe", nil, nil))
		if err != nil {
			t.Fatal(err)
		}
		p := string(id[:4])
		if seen[p] {
			prefix = p
		}
		seen[p] = true
	}
	if prefix == "" {
		t.Skip("no colliding prefix found")
	}
	if _, err := r.ResolveCommit(prefix); !errors.Is(err, ErrAmbiguousCommit) {
		t.Fatalf("ResolveCommit(%s) error = %v, want ErrAmbiguousCommit", prefix, err)
	}
}

func TestCheckoutBranch(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "base", map[string]string{"shared.txt": "s", "gone.txt": "g"})
	mustBranch(t, r, "feature")
	mustCheckout(t, r, "feature")
	if err := r.Remove("gone.txt"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "feature work", map[string]string{"shared.txt": "feature", "new.txt": "n"})

	mustCheckout(t, r, "master")
	if got := readFile(t, r, "shared.txt"); got != "s" {
		t.Errorf("shared.txt = %q on master", got)
	}
	if !fileExists(t, r, "gone.txt") {
		t.Error("gone.txt should be restored on master")
	}
	if fileExists(t, r, "new.txt") {
		t.Error("new.txt should not exist on master")
	}
	if cur, _ := r.CurrentBranch(); cur != "master" {
		t.Errorf("CurrentBranch = %s", cur)
	}

	mustCheckout(t, r, "feature")
	if got := readFile(t, r, "shared.txt"); got != "feature" {
		t.Errorf("shared.txt = %q on feature", got)
	}
	if fileExists(t, r, "gone.txt") {
		t.Error("gone.txt should be deleted on feature")
	}
}

func TestCheckoutBranch_Errors(t *testing.T) {
	r := newTestRepo(t)
	if err := r.CheckoutBranch("nope"); !errors.Is(err, ErrNoSuchBranch) {
		t.Errorf("error = %v, want ErrNoSuchBranch", err)
	}
	if err := r.CheckoutBranch("master"); !errors.Is(err, ErrAlreadyOnBranch) {
		t.Errorf("error = %v, want ErrAlreadyOnBranch", err)
	}
}

func TestCheckoutBranch_UntrackedInTheWay(t *testing.T) {
	r := newTestRepo(t)
	mustBranch(t, r, "empty")
	commitFiles(t, r, "add a", map[string]string{"a.txt": "master"})
	mustCheckout(t, r, "empty")
	if fileExists(t, r, "a.txt") {
		t.Fatal("a.txt should be removed on branch empty")
	}

	writeFile(t, r, "a.txt", "mine")
	if err := r.CheckoutBranch("master"); !errors.Is(err, ErrUntrackedInWay) {
		t.Fatalf("error = %v, want ErrUntrackedInWay", err)
	}
	if got := readFile(t, r, "a.txt"); got != "mine" {
		t.Error("failed checkout must not touch the untracked file")
	}
	if cur, _ := r.CurrentBranch(); cur != "empty" {
		t.Errorf("failed checkout moved HEAD to %s", cur)
	}

	// Identical content is not in the way.
	writeFile(t, r, "a.txt", "master")
	mustCheckout(t, r, "master")
}

func TestCheckoutBranch_IgnoredFileInTheWay(t *testing.T) {
	r := newTestRepo(t)
	mustBranch(t, r, "other")
	mustCheckout(t, r, "other")
	commitFiles(t, r, "add log", map[string]string{"a.log": "theirs\n"})
	mustCheckout(t, r, "master")

	writeFile(t, r, IgnoreFile, "*.log\n")
	writeFile(t, r, "a.log", "precious\n")
	if err := r.CheckoutBranch("other"); !errors.Is(err, ErrUntrackedInWay) {
		t.Fatalf("error = %v, want ErrUntrackedInWay", err)
	}
	if got := readFile(t, r, "a.log"); got != "precious\n" {
		t.Errorf("a.log = %q, an ignored untracked file must not be overwritten", got)
	}
	if cur, _ := r.CurrentBranch(); cur != "master" {
		t.Errorf("failed checkout moved HEAD to %s", cur)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	for _, p := range st.Untracked {
		if p == "a.log" {
			t.Error("status should still hide the ignored file")
		}
	}
}

func TestCheckoutBranch_KeepsUnrelatedUntracked(t *testing.T) {
	r := newTestRepo(t)
	mustBranch(t, r, "other")
	commitFiles(t, r, "add a", map[string]string{"a.txt": "a"})
	writeFile(t, r, "notes.txt", "scratch")

	mustCheckout(t, r, "other")
	if got := readFile(t, r, "notes.txt"); got != "scratch" {
		t.Errorf("notes.txt = %q", got)
	}
}

func TestCheckoutBranch_DropsStagedFiles(t *testing.T) {
	r := newTestRepo(t)
	mustBranch(t, r, "other")
	writeFile(t, r, "staged.txt", "s")
	mustAdd(t, r, "staged.txt")

	mustCheckout(t, r, "other")
	if fileExists(t, r, "staged.txt") {
		t.Error("a file staged for addition is removed by a branch checkout")
	}
	ix, err := r.ReadStaging()
	if err != nil {
		t.Fatal(err)
	}
	if !ix.IsClean() {
		t.Error("staging should be cleared by a branch checkout")
	}
}
