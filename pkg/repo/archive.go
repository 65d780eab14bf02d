package repo

import (
	"fmt"
	"io"

	"github.com/odvcencio/gitlet/pkg/archive"
	"github.com/odvcencio/gitlet/pkg/object"
)

// Archive writes the files tracked by the commit named by prefix to w as a
// zstd-compressed tar stream, using the configured compression level. It
// returns the resolved commit id.
func (r *Repo) Archive(prefix string, w io.Writer) (object.Hash, error) {
	id, err := r.ResolveCommit(prefix)
	if err != nil {
		return "", err
	}
	c, err := r.ReadCommit(id)
	if err != nil {
		return "", err
	}
	level, err := archive.ParseLevel(r.Config.Archive.Level)
	if err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}
	ts, err := c.Time()
	if err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}

	entries := make([]archive.Entry, 0, len(c.Tracked))
	for _, p := range c.Tracked.Paths() {
		data, err := r.blobData(c.Tracked[p])
		if err != nil {
			return "", fmt.Errorf("archive: %s: %w", p, err)
		}
		entries = append(entries, archive.Entry{Path: p, Data: data})
	}
	if err := archive.Write(w, entries, archive.Options{Level: level, ModTime: ts}); err != nil {
		return "", err
	}
	r.log.Debug("archived commit", "id", id, "files", len(entries), "level", level)
	return id, nil
}
