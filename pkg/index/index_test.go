package index

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

// memBlobs records writes so tests can assert the store was (not) touched.
type memBlobs struct {
	writes map[object.Hash][]byte
	err    error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{writes: make(map[object.Hash][]byte)}
}

func (m *memBlobs) WriteBlob(data []byte) (object.Hash, error) {
	if m.err != nil {
		return "", m.err
	}
	h := object.HashBytes(data)
	m.writes[h] = append([]byte(nil), data...)
	return h, nil
}

func trackedIndex(t *testing.T, files map[object.Path]string) *Index {
	t.Helper()
	tracked := object.TrackedMap{}
	for p, content := range files {
		tracked[p] = object.HashBytes([]byte(content))
	}
	ix := New()
	ix.SetTracked(tracked)
	return ix
}

func TestAddNewFile(t *testing.T) {
	ix := trackedIndex(t, nil)
	blobs := newMemBlobs()

	changed, err := ix.Add("a.txt", []byte("hello"), blobs)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !changed {
		t.Fatal("adding a new file should report a change")
	}
	h, ok := ix.Staged("a.txt")
	if !ok || h != object.HashBytes([]byte("hello")) {
		t.Errorf("Staged(a.txt) = %s, %v", h, ok)
	}
	if _, ok := blobs.writes[h]; !ok {
		t.Error("blob was not stored")
	}
	if ix.IsClean() {
		t.Error("index should not be clean after an add")
	}
}

func TestAddUnchangedTrackedFileIsNoop(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"a.txt": "v1"})
	blobs := newMemBlobs()

	changed, err := ix.Add("a.txt", []byte("v1"), blobs)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if changed {
		t.Error("re-adding committed content should report no change")
	}
	if !ix.IsClean() {
		t.Error("index should stay clean")
	}
	if len(blobs.writes) != 0 {
		t.Error("store should not be touched")
	}
}

func TestAddRevertedFileDropsStaleStage(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"a.txt": "v1"})
	blobs := newMemBlobs()

	if _, err := ix.Add("a.txt", []byte("v2"), blobs); err != nil {
		t.Fatalf("Add v2: %v", err)
	}
	changed, err := ix.Add("a.txt", []byte("v1"), blobs)
	if err != nil {
		t.Fatalf("Add v1: %v", err)
	}
	if !changed {
		t.Error("reverting a staged file should report a change")
	}
	if !ix.IsClean() {
		t.Errorf("index should be clean after revert, added=%v", ix.Added())
	}
}

func TestAddSameStagedContentIsNoop(t *testing.T) {
	ix := trackedIndex(t, nil)
	blobs := newMemBlobs()
	if _, err := ix.Add("a.txt", []byte("x"), blobs); err != nil {
		t.Fatalf("Add: %v", err)
	}
	changed, err := ix.Add("a.txt", []byte("x"), blobs)
	if err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if changed {
		t.Error("re-adding identical staged content should report no change")
	}
}

func TestAddCancelsRemoval(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"a.txt": "v1"})
	blobs := newMemBlobs()

	if got := ix.Remove("a.txt"); got != RemoveStaged {
		t.Fatalf("Remove = %v, want RemoveStaged", got)
	}
	changed, err := ix.Add("a.txt", []byte("v1"), blobs)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if changed {
		t.Error("cancelling a removal reports no effective change")
	}
	if ix.IsRemoved("a.txt") {
		t.Error("removal should be cancelled")
	}
	if !ix.IsClean() {
		t.Error("index should be clean")
	}
	if len(blobs.writes) != 0 {
		t.Error("cancelling a removal must not write to the store")
	}
}

func TestAddDifferentContentAfterRemoval(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"a.txt": "v1"})
	blobs := newMemBlobs()

	ix.Remove("a.txt")
	changed, err := ix.Add("a.txt", []byte("v2"), blobs)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !changed {
		t.Error("new content should be staged")
	}
	if ix.IsRemoved("a.txt") {
		t.Error("a path must never be both added and removed")
	}
}

func TestAddPropagatesStoreError(t *testing.T) {
	ix := trackedIndex(t, nil)
	boom := errors.New("disk full")
	blobs := &memBlobs{writes: map[object.Hash][]byte{}, err: boom}

	if _, err := ix.Add("a.txt", []byte("x"), blobs); !errors.Is(err, boom) {
		t.Fatalf("Add error = %v, want %v", err, boom)
	}
	if !ix.IsClean() {
		t.Error("failed add must not stage anything")
	}
}

func TestRemove(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"tracked.txt": "t"})
	blobs := newMemBlobs()
	if _, err := ix.Add("new.txt", []byte("n"), blobs); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := ix.Remove("new.txt"); got != RemoveUnstaged {
		t.Errorf("Remove(new.txt) = %v, want RemoveUnstaged", got)
	}
	if got := ix.Remove("tracked.txt"); got != RemoveStaged {
		t.Errorf("Remove(tracked.txt) = %v, want RemoveStaged", got)
	}
	if got := ix.Remove("nothing.txt"); got != RemoveNothing {
		t.Errorf("Remove(nothing.txt) = %v, want RemoveNothing", got)
	}
	if got := ix.RemovedPaths(); len(got) != 1 || got[0] != "tracked.txt" {
		t.Errorf("RemovedPaths = %v", got)
	}
}

func TestFold(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"keep.txt": "k", "edit.txt": "e1", "drop.txt": "d"})
	tracked := ix.Tracked().Clone()
	blobs := newMemBlobs()

	if _, err := ix.Add("edit.txt", []byte("e2"), blobs); err != nil {
		t.Fatalf("Add edit: %v", err)
	}
	if _, err := ix.Add("new.txt", []byte("n"), blobs); err != nil {
		t.Fatalf("Add new: %v", err)
	}
	ix.Remove("drop.txt")

	got := ix.Fold()
	want := object.TrackedMap{
		"keep.txt": object.HashBytes([]byte("k")),
		"edit.txt": object.HashBytes([]byte("e2")),
		"new.txt":  object.HashBytes([]byte("n")),
	}
	if !got.Equal(want) {
		t.Errorf("Fold() = %v, want %v", got, want)
	}
	if !ix.IsClean() {
		t.Error("Fold should clear the staging area")
	}
	if !ix.Tracked().Equal(tracked) {
		t.Error("Fold must not mutate the borrowed tracked map")
	}
}

func TestFoldClean(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"a": "1"})
	if got := ix.Fold(); !got.Equal(ix.Tracked()) {
		t.Errorf("Fold on clean index = %v, want tracked map", got)
	}
}

func TestClear(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"a": "1"})
	if _, err := ix.Add("b", []byte("2"), newMemBlobs()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ix.Remove("a")
	ix.Clear()
	if !ix.IsClean() {
		t.Error("Clear should empty the staging area")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	ix := trackedIndex(t, map[object.Path]string{"gone.txt": "g"})
	if _, err := ix.Add("dir/new.txt", []byte("n"), newMemBlobs()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ix.Remove("gone.txt")

	data, err := Marshal(ix)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if h, ok := back.Staged("dir/new.txt"); !ok || h != object.HashBytes([]byte("n")) {
		t.Errorf("added entry lost: %s %v", h, ok)
	}
	if !back.IsRemoved("gone.txt") {
		t.Error("removed entry lost")
	}
	if len(back.Tracked()) != 0 {
		t.Error("tracked map must not be persisted")
	}
}

func TestUnmarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "garbage"},
		{"wrong version", `{"version":7}`},
		{"added and removed", `{"version":1,"added":{"a":"h"},"removed":["a"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); !errors.Is(err, ErrUnsupported) {
				t.Fatalf("Unmarshal error = %v, want ErrUnsupported", err)
			}
		})
	}
}
