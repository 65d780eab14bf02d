package object

import (
	"crypto/sha1"
	"encoding/hex"
)

const (
	// HashLen is the length of a full hex-encoded object id.
	HashLen = 2 * sha1.Size

	// MinPrefixLen is the shortest abbreviated id ResolvePrefix accepts.
	MinPrefixLen = 4
)

// HashBytes computes the SHA-1 of the concatenation of parts and returns it
// as a lowercase hex-encoded Hash.
func HashBytes(parts ...[]byte) Hash {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashStrings is HashBytes over the UTF-8 bytes of each string.
func HashStrings(parts ...string) Hash {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// Short returns the first n characters of h, or h itself when shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

// IsFull reports whether h has the length of a complete id and is hex.
func (h Hash) IsFull() bool {
	if len(h) != HashLen {
		return false
	}
	_, err := hex.DecodeString(string(h))
	return err == nil
}
