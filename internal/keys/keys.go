// Package keys produces and encodes the 256-bit symmetric keys used to pack files.
//
// Keys travel outside the process only as base64 tokens. Decoding a token
// never pads or truncates: anything other than exactly 32 bytes is rejected.
package keys

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// Size is the only accepted key length in bytes.
const Size = 32

var (
	// ErrMalformedToken is returned when a token is not valid base64.
	ErrMalformedToken = errors.New("keys: malformed key token")
	// ErrWrongLength is returned when a token decodes to anything but Size bytes.
	ErrWrongLength = errors.New("keys: wrong key length")
	// ErrEntropy is returned when the random source cannot fill a key.
	ErrEntropy = errors.New("keys: reading random source")
)

// Error codes attached to the rich errors.
const (
	ErrCodeMalformed = "KEY_MALFORMED_TOKEN"
	ErrCodeLength    = "KEY_WRONG_LENGTH"
	ErrCodeEntropy   = "KEY_ENTROPY"
)

// Key holds raw key bytes for the duration of one operation.
type Key []byte

// Generate fills a new key from random.
// Pass crypto/rand.Reader outside of tests.
func Generate(random io.Reader) (Key, error) {
	key := make(Key, Size)

	if _, err := io.ReadFull(random, key); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeEntropy, "failed to read key material")

		return nil, fmt.Errorf("%w: %w", ErrEntropy, richErr)
	}

	return key, nil
}

// Decode parses a token produced by Token.
func Decode(token string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeMalformed, "failed to decode base64 key token")

		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, richErr)
	}

	if len(raw) != Size {
		clear(raw)

		richErr := goerrors.New(ErrCodeLength, fmt.Sprintf("key must be %d bytes (got %d)", Size, len(raw)))

		return nil, fmt.Errorf("%w: %w", ErrWrongLength, richErr)
	}

	return Key(raw), nil
}

// Token returns the printable, reversible form of the key.
func (k Key) Token() string {
	return base64.StdEncoding.EncodeToString(k)
}

// Valid reports whether the key has the required length.
func (k Key) Valid() bool {
	return len(k) == Size
}

// Zero overwrites the key bytes in place.
func (k Key) Zero() {
	clear(k)
}
