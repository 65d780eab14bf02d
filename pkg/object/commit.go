package object

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TimestampLayout is the fixed calendar format stored in commits.
	TimestampLayout = "Mon Jan 2 15:04:05 2006 -0700"

	InitialCommitMessage = "initial commit"
)

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// NewCommit builds a commit stamped at ts. The tracked map and parent list
// are copied so the caller keeps ownership of its arguments.
func NewCommit(ts time.Time, message string, parents []Hash, tracked TrackedMap) *Commit {
	ps := make([]Hash, len(parents))
	copy(ps, parents)
	return &Commit{
		Timestamp: FormatTimestamp(ts),
		Message:   message,
		Parents:   ps,
		Tracked:   tracked.Clone(),
	}
}

// InitialCommit returns the root commit every repository starts from. Its
// fields are fixed, so every repository shares the same root id.
func InitialCommit() *Commit {
	return NewCommit(time.Unix(0, 0).UTC(), InitialCommitMessage, nil, nil)
}

// Hash computes the commit identity from timestamp, message, parent list and
// tracked map, in that order.
func (c *Commit) Hash() Hash {
	return HashStrings(c.Timestamp, c.Message, parentsText(c.Parents), c.Tracked.String())
}

// Time parses the stored timestamp.
func (c *Commit) Time() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, c.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("commit timestamp %q: %w", c.Timestamp, err)
	}
	return t, nil
}

// IsMerge reports whether the commit has two parents.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// parentsText renders the parent list as "[p1, p2]".
func parentsText(parents []Hash) string {
	parts := make([]string, len(parents))
	for i, p := range parents {
		parts[i] = string(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
