// Package merge classifies file state across a split commit and two
// divergent heads and renders whole-file conflict markers.
//
// Classification is pure: it works on tracked maps only and never touches
// the store or the working tree. The repository applies the actions.
package merge

import (
	"bytes"
	"sort"

	"github.com/samber/lo"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ActionKind is what the repository must do with one path.
type ActionKind int

const (
	// Keep leaves the current head's version (or absence) in place.
	Keep ActionKind = iota
	// Delete removes the path from the tracked map and working tree.
	Delete
	// TakeOther writes the other head's blob and stages it.
	TakeOther
	// Conflict writes conflict markers around both versions and stages them.
	Conflict
)

func (k ActionKind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case TakeOther:
		return "take-other"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Action is the decision for one path. Ours and Theirs hold the blob ids
// the decision refers to; empty means the side does not have the file.
type Action struct {
	Path   object.Path
	Kind   ActionKind
	Ours   object.Hash
	Theirs object.Hash
}

// Classify decides every path present in split, current or other. Actions
// are returned in path order and include Keep decisions.
func Classify(split, current, other object.TrackedMap) []Action {
	paths := lo.Uniq(append(append(lo.Keys(split), lo.Keys(current)...), lo.Keys(other)...))
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	actions := make([]Action, 0, len(paths))
	for _, p := range paths {
		s, inSplit := split[p]
		c := current[p]
		b := other[p]
		a := Action{Path: p, Kind: Keep}

		if inSplit {
			switch {
			case c == "":
				// Deleted in current.
				if b != "" && b != s {
					a = Action{Path: p, Kind: Conflict, Theirs: b}
				}
			case c == s:
				// Unchanged in current.
				switch {
				case b == "":
					a = Action{Path: p, Kind: Delete}
				case b != s:
					a = Action{Path: p, Kind: TakeOther, Theirs: b}
				}
			default:
				// Changed in current.
				switch {
				case b == "":
					a = Action{Path: p, Kind: Conflict, Ours: c}
				case b != s && b != c:
					a = Action{Path: p, Kind: Conflict, Ours: c, Theirs: b}
				}
			}
		} else if b != "" {
			switch {
			case c == "":
				a = Action{Path: p, Kind: TakeOther, Theirs: b}
			case c != b:
				a = Action{Path: p, Kind: Conflict, Ours: c, Theirs: b}
			}
		}
		actions = append(actions, a)
	}
	return actions
}

const (
	markerOurs   = "<<<<<<< HEAD\n"
	markerSep    = "=======\n"
	markerTheirs = ">>>>>>>\n"
)

// RenderConflict wraps both versions of a file in conflict markers. A nil
// side contributes nothing. A side lacking a trailing newline gets one so
// each marker stays on its own line.
func RenderConflict(ours, theirs []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(markerOurs)
	writeSide(&buf, ours)
	buf.WriteString(markerSep)
	writeSide(&buf, theirs)
	buf.WriteString(markerTheirs)
	return buf.Bytes()
}

func writeSide(buf *bytes.Buffer, data []byte) {
	buf.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
}
