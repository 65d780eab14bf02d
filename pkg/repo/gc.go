package repo

import (
	"fmt"

	"github.com/hashicorp/go-set/v2"

	"github.com/odvcencio/gitlet/pkg/object"
)

// GCSummary reports what GC examined and removed.
type GCSummary struct {
	Commits      int
	BlobsKept    int
	BlobsPruned  int
	PrunedHashes []object.Hash
}

// GC deletes blobs that no stored commit and no staged addition refers to.
// Such blobs are left behind when a file is staged and then restaged with
// other content. Commits are never pruned, so global-log is unaffected.
func (r *Repo) GC() (*GCSummary, error) {
	commits, err := r.Store.List(object.KindCommit)
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}
	live := set.New[object.Hash](64)
	for _, id := range commits {
		c, err := r.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("gc: %s: %w", id, err)
		}
		for _, h := range c.Tracked {
			live.Insert(h)
		}
	}
	ix, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}
	for _, h := range ix.Added() {
		live.Insert(h)
	}

	blobs, err := r.Store.List(object.KindBlob)
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}
	summary := &GCSummary{Commits: len(commits)}
	for _, h := range blobs {
		if live.Contains(h) {
			summary.BlobsKept++
			continue
		}
		if err := r.Store.Delete(object.KindBlob, h); err != nil {
			return nil, fmt.Errorf("gc: %w", err)
		}
		summary.BlobsPruned++
		summary.PrunedHashes = append(summary.PrunedHashes, h)
	}
	r.log.Debug("gc", "commits", summary.Commits, "kept", summary.BlobsKept, "pruned", summary.BlobsPruned)
	return summary, nil
}
