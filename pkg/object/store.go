package object

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrAmbiguousPrefix = errors.New("ambiguous object id prefix")
	ErrPrefixTooShort  = fmt.Errorf("object id prefix shorter than %d characters", MinPrefixLen)
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout per kind: commits/ab/cdef0123..., blobs/ab/cdef0123...
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. Kind
// subdirectories are created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(kind Kind, h Hash) string {
	return filepath.Join(s.root, string(kind), string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(kind Kind, h Hash) bool {
	if len(h) < 3 {
		return false
	}
	_, err := os.Stat(s.objectPath(kind, h))
	return err == nil
}

// Write stores payload under h. Writing an id that already exists is a
// no-op, so identical content never takes space twice. Writes are atomic:
// data is written to a temp file and then renamed into place.
func (s *Store) Write(kind Kind, h Hash, payload []byte) error {
	if !h.IsFull() {
		return fmt.Errorf("object write: invalid hash %q", h)
	}

	// Fast path: already exists.
	if s.Has(kind, h) {
		return nil
	}

	dir := filepath.Join(s.root, string(kind), string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(kind, h)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object write rename: %w", err)
	}
	return nil
}

// Read returns the payload stored under h, or ErrObjectNotFound.
func (s *Store) Read(kind Kind, h Hash) ([]byte, error) {
	if len(h) < 3 {
		return nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
	}
	data, err := os.ReadFile(s.objectPath(kind, h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return data, nil
}

// Delete removes the object stored under h. Deleting a missing object is
// not an error. An emptied fan-out directory is removed.
func (s *Store) Delete(kind Kind, h Hash) error {
	if !h.IsFull() {
		return fmt.Errorf("object delete: invalid hash %q", h)
	}
	p := s.objectPath(kind, h)
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("object delete %s: %w", h, err)
	}
	_ = os.Remove(filepath.Dir(p)) // fails while other objects remain
	return nil
}

// ResolvePrefix expands an abbreviated id by scanning the fan-out
// directory named by its first two characters.
func (s *Store) ResolvePrefix(kind Kind, prefix string) (Hash, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if Hash(prefix).IsFull() {
		if !s.Has(kind, Hash(prefix)) {
			return "", fmt.Errorf("resolve %s: %w", prefix, ErrObjectNotFound)
		}
		return Hash(prefix), nil
	}
	if len(prefix) < MinPrefixLen {
		return "", ErrPrefixTooShort
	}
	if !isHex(prefix) {
		return "", fmt.Errorf("resolve %s: %w", prefix, ErrObjectNotFound)
	}

	dir := filepath.Join(s.root, string(kind), prefix[:2])
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("resolve %s: %w", prefix, ErrObjectNotFound)
		}
		return "", fmt.Errorf("resolve %s: %w", prefix, err)
	}

	var found Hash
	rest := prefix[2:]
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), rest) || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("resolve %s: %w", prefix, ErrAmbiguousPrefix)
		}
		found = Hash(prefix[:2] + e.Name())
	}
	if found == "" {
		return "", fmt.Errorf("resolve %s: %w", prefix, ErrObjectNotFound)
	}
	return found, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// List returns every id of the given kind, sorted.
func (s *Store) List(kind Kind) ([]Hash, error) {
	base := filepath.Join(s.root, string(kind))
	dirs, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	var out []Hash
	for _, d := range dirs {
		if !d.IsDir() || len(d.Name()) != 2 {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(base, d.Name()))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		for _, e := range entries {
			h := Hash(d.Name() + e.Name())
			if e.IsDir() || !h.IsFull() {
				continue
			}
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob stores data as a blob and returns its content hash.
func (s *Store) WriteBlob(data []byte) (Hash, error) {
	b := &Blob{Data: data}
	h := b.Hash()
	if err := s.Write(KindBlob, h, MarshalBlob(b)); err != nil {
		return "", err
	}
	return h, nil
}

// ReadBlob reads a blob back.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	data, err := s.Read(KindBlob, h)
	if err != nil {
		return nil, err
	}
	return UnmarshalBlob(data), nil
}

// WriteCommit serializes and stores a Commit under its identity.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	h := c.Hash()
	if err := s.Write(KindCommit, h, MarshalCommit(c)); err != nil {
		return "", err
	}
	return h, nil
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	data, err := s.Read(KindCommit, h)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return c, nil
}
