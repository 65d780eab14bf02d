package object

import (
	"crypto/rand"
	"fmt"
	"testing"
	"time"
)

// BenchmarkWriteBlobSmall benchmarks storing distinct 100-byte blobs.
func BenchmarkWriteBlobSmall(b *testing.B) {
	s := NewStore(b.TempDir())

	// Distinct payloads so each write misses the Has() fast path.
	payloads := make([][]byte, b.N)
	for i := range payloads {
		buf := make([]byte, 100)
		if _, err := rand.Read(buf); err != nil {
			b.Fatalf("rand.Read: %v", err)
		}
		payloads[i] = buf
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.WriteBlob(payloads[i]); err != nil {
			b.Fatalf("WriteBlob: %v", err)
		}
	}
}

// BenchmarkWriteBlobDuplicate benchmarks the already-stored fast path.
func BenchmarkWriteBlobDuplicate(b *testing.B) {
	s := NewStore(b.TempDir())
	data := []byte("same content every time\n")
	if _, err := s.WriteBlob(data); err != nil {
		b.Fatalf("WriteBlob: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.WriteBlob(data); err != nil {
			b.Fatalf("WriteBlob: %v", err)
		}
	}
}

// BenchmarkResolvePrefix benchmarks abbreviated id lookup in a store of
// 1000 commits.
func BenchmarkResolvePrefix(b *testing.B) {
	s := NewStore(b.TempDir())
	var ids []Hash
	for i := 0; i < 1000; i++ {
		c := NewCommit(time.Unix(int64(i), 0), fmt.Sprintf("commit %d", i), nil, nil)
		h, err := s.WriteCommit(c)
		if err != nil {
			b.Fatalf("WriteCommit: %v", err)
		}
		ids = append(ids, h)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		want := ids[i%len(ids)]
		got, err := s.ResolvePrefix(KindCommit, string(want[:8]))
		if err != nil {
			b.Fatalf("ResolvePrefix: %v", err)
		}
		if got != want {
			b.Fatalf("ResolvePrefix = %s, want %s", got, want)
		}
	}
}

// BenchmarkCommitHash benchmarks identity computation for a 500-file commit.
func BenchmarkCommitHash(b *testing.B) {
	tracked := TrackedMap{}
	for i := 0; i < 500; i++ {
		tracked[Path(fmt.Sprintf("dir%d/file%d.txt", i%10, i))] = HashStrings(fmt.Sprint(i))
	}
	c := NewCommit(time.Unix(1700000000, 0).UTC(), "bench", []Hash{HashStrings("p")}, tracked)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Hash()
	}
}
