package object

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// Kind identifies the directory an object family lives under.
type Kind string

const (
	KindBlob   Kind = "blobs"
	KindCommit Kind = "commits"
)

// ErrInvalidPath is returned by NewPath for paths that cannot be tracked.
var ErrInvalidPath = errors.New("invalid path")

// Path is a cleaned, forward-slash path relative to the working tree root.
type Path string

// NewPath canonicalizes p. Absolute paths, the root itself and paths that
// leave the root are rejected.
func NewPath(p string) (Path, error) {
	s := path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
	switch {
	case s == "." || s == "":
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	case strings.HasPrefix(s, "/") || filepath.IsAbs(p):
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidPath, p)
	case s == ".." || strings.HasPrefix(s, "../"):
		return "", fmt.Errorf("%w: %q is outside the working tree", ErrInvalidPath, p)
	case strings.ContainsAny(s, "\n\r"):
		return "", fmt.Errorf("%w: %q contains a line break", ErrInvalidPath, p)
	}
	return Path(s), nil
}

// OS returns the path with the platform separator.
func (p Path) OS() string {
	return filepath.FromSlash(string(p))
}

// TrackedMap maps every file known to a commit to the blob holding its
// content. It is a full snapshot, not a diff.
type TrackedMap map[Path]Hash

// Clone returns an independent copy. A nil map clones to an empty one.
func (m TrackedMap) Clone() TrackedMap {
	out := make(TrackedMap, len(m))
	for p, h := range m {
		out[p] = h
	}
	return out
}

// Paths returns the keys in byte-wise order.
func (m TrackedMap) Paths() []Path {
	out := make([]Path, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether both maps hold the same entries.
func (m TrackedMap) Equal(other TrackedMap) bool {
	if len(m) != len(other) {
		return false
	}
	for p, h := range m {
		if oh, ok := other[p]; !ok || oh != h {
			return false
		}
	}
	return true
}

// String renders the canonical text form used in commit hashing:
//
//	{a.txt=<hash>, dir/b.txt=<hash>}
func (m TrackedMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range m.Paths() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(p))
		b.WriteByte('=')
		b.WriteString(string(m[p]))
	}
	b.WriteByte('}')
	return b.String()
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// Hash returns the blob identity, the digest of its raw bytes.
func (b *Blob) Hash() Hash {
	return HashBytes(b.Data)
}

// Commit is an immutable snapshot node. Tracked is owned by the commit and
// must not be modified after construction.
type Commit struct {
	Timestamp string
	Message   string
	Parents   []Hash
	Tracked   TrackedMap
}
