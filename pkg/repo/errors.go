package repo

import "errors"

// User-facing failures. The text of each is the complete message shown to
// the user.
var (
	ErrAlreadyInitialized = errors.New("A Gitlet version-control system already exists in the current directory.")
	ErrNotInitialized     = errors.New("Not in an initialized Gitlet directory.")

	ErrFileNotFound     = errors.New("File does not exist.")
	ErrEmptyMessage     = errors.New("Please enter a commit message.")
	ErrNothingStaged    = errors.New("No changes added to the commit.")
	ErrNothingToRemove  = errors.New("No reason to remove the file.")
	ErrNoMatchingCommit = errors.New("Found no commit with that message.")
	ErrFileNotInCommit  = errors.New("File does not exist in that commit.")

	ErrNoSuchCommit     = errors.New("No commit with that id exists.")
	ErrShortCommitID    = errors.New("Commit id should contain at least 4 characters.")
	ErrAmbiguousCommit  = errors.New("More than 1 commit has the same id prefix.")
	ErrNoSuchBranch     = errors.New("No such branch exists.")
	ErrAlreadyOnBranch  = errors.New("No need to checkout the current branch.")
	ErrUntrackedInWay   = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrBranchExists     = errors.New("A branch with that name already exists.")
	ErrBranchNotFound   = errors.New("A branch with that name does not exist.")
	ErrRemoveCurrent    = errors.New("Cannot remove the current branch.")
	ErrUncommitted      = errors.New("You have uncommitted changes.")
	ErrMergeSelf        = errors.New("Cannot merge a branch with itself.")
	ErrInvalidBranch    = errors.New("Invalid branch name.")
	ErrDetachedHead     = errors.New("HEAD does not name a branch.")
	ErrNoSplit          = errors.New("no common ancestor found")
)
