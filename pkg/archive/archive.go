// Package archive exports a snapshot of tracked files as a zstd-compressed
// tar stream and reads such streams back.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ErrUnknownLevel is returned by ParseLevel for names zstd does not know.
var ErrUnknownLevel = errors.New("unknown archive compression level")

// Entry is one file in a snapshot.
type Entry struct {
	Path object.Path
	Data []byte
}

// Options control how a snapshot is written.
type Options struct {
	Level   zstd.EncoderLevel
	ModTime time.Time
}

// ParseLevel maps fastest, default, better or best to a zstd encoder level.
// An empty name selects the default level.
func ParseLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return zstd.SpeedDefault, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return zstd.SpeedDefault, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return level, nil
}

// Write streams entries to w in path order as tar.zst.
func Write(w io.Writer, entries []Entry, opts Options) error {
	level := opts.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
	if err != nil {
		return fmt.Errorf("archive: zstd writer: %w", err)
	}

	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	tw := tar.NewWriter(enc)
	for _, e := range sorted {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     string(e.Path),
			Mode:     0o644,
			Size:     int64(len(e.Data)),
			ModTime:  opts.ModTime,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			enc.Close()
			return fmt.Errorf("archive: header %s: %w", e.Path, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			enc.Close()
			return fmt.Errorf("archive: write %s: %w", e.Path, err)
		}
	}
	if err := tw.Close(); err != nil {
		enc.Close()
		return fmt.Errorf("archive: close tar: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("archive: close zstd: %w", err)
	}
	return nil
}

// Read decodes a tar.zst stream written by Write. Entries whose names are
// not valid working-tree paths are rejected.
func Read(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("archive: zstd reader: %w", err)
	}
	defer dec.Close()

	var out []Entry
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("archive: next entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		p, err := object.NewPath(hdr.Name)
		if err != nil {
			return nil, fmt.Errorf("archive: entry %q: %w", hdr.Name, err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("archive: read %s: %w", p, err)
		}
		out = append(out, Entry{Path: p, Data: data})
	}
	return out, nil
}
