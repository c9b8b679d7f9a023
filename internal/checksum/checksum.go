// Package checksum computes the integrity digests reported after pack and unpack.
package checksum

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Size is the length of a digest in hex characters.
const Size = sha256.Size * 2

// Sum returns the lower-case hex SHA-256 of data.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)

	return hex.EncodeToString(digest[:])
}

// Verify reports whether data hashes to expected.
// expected is compared case-insensitively and may carry surrounding whitespace.
func Verify(data []byte, expected string) bool {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if len(expected) != Size {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(Sum(data)), []byte(expected)) == 1
}
