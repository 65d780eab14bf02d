package object

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCorruptObject marks a stored object that cannot be decoded. The store
// never expects foreign content, so callers treat it as fatal.
var ErrCorruptObject = errors.New("corrupt object")

const (
	commitMagic   = "gitlet-commit"
	commitVersion = 1
)

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) *Blob {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}
}

// MarshalCommit serializes a Commit:
//
//	gitlet-commit 1
//	timestamp T
//	parent H      (zero to two, in order)
//	file H path   (zero or more, sorted by path)
//
//	message
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d\n", commitMagic, commitVersion)
	fmt.Fprintf(&buf, "timestamp %s\n", c.Timestamp)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	for _, p := range c.Tracked.Paths() {
		fmt.Fprintf(&buf, "file %s %s\n", c.Tracked[p], p)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit from its serialized form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w: missing header/message separator", ErrCorruptObject)
	}
	lines := strings.Split(string(data[:idx]), "\n")

	magic, version, _ := strings.Cut(lines[0], " ")
	if magic != commitMagic {
		return nil, fmt.Errorf("unmarshal commit: %w: bad magic %q", ErrCorruptObject, lines[0])
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != commitVersion {
		return nil, fmt.Errorf("unmarshal commit: %w: unsupported version %q", ErrCorruptObject, version)
	}

	c := &Commit{
		Message: string(data[idx+2:]),
		Tracked: make(TrackedMap),
	}
	for _, line := range lines[1:] {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: %w: malformed header line %q", ErrCorruptObject, line)
		}
		switch key {
		case "timestamp":
			c.Timestamp = val
		case "parent":
			c.Parents = append(c.Parents, Hash(val))
		case "file":
			h, p, ok := strings.Cut(val, " ")
			if !ok || p == "" {
				return nil, fmt.Errorf("unmarshal commit: %w: malformed file entry %q", ErrCorruptObject, val)
			}
			c.Tracked[Path(p)] = Hash(h)
		default:
			return nil, fmt.Errorf("unmarshal commit: %w: unknown header key %q", ErrCorruptObject, key)
		}
	}
	if c.Timestamp == "" {
		return nil, fmt.Errorf("unmarshal commit: %w: missing timestamp", ErrCorruptObject)
	}
	return c, nil
}
