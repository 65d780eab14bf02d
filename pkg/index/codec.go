package index

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Version is the on-disk format version written by Marshal.
const Version = 1

// ErrUnsupported is returned for index files this build cannot read.
var ErrUnsupported = errors.New("unsupported index format")

type fileFormat struct {
	Version int                         `json:"version"`
	Added   map[object.Path]object.Hash `json:"added"`
	Removed []object.Path               `json:"removed"`
}

// Marshal encodes the added map and removed set. The tracked map is not
// part of the encoding.
func Marshal(ix *Index) ([]byte, error) {
	ff := fileFormat{
		Version: Version,
		Added:   ix.Added(),
		Removed: ix.RemovedPaths(),
	}
	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal index: %w", err)
	}
	return data, nil
}

// Unmarshal decodes an index. The result tracks nothing until SetTracked
// is called.
func Unmarshal(data []byte) (*Index, error) {
	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unmarshal index: %w: %v", ErrUnsupported, err)
	}
	if ff.Version != Version {
		return nil, fmt.Errorf("unmarshal index: %w: version %d", ErrUnsupported, ff.Version)
	}

	ix := New()
	for p, h := range ff.Added {
		ix.added[p] = h
	}
	for _, p := range ff.Removed {
		if _, dup := ix.added[p]; dup {
			return nil, fmt.Errorf("unmarshal index: %w: %q both added and removed", ErrUnsupported, p)
		}
		ix.removed.Insert(p)
	}
	return ix, nil
}
