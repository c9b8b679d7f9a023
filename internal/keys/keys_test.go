package keys_test

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptobro/internal/keys"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	key, err := keys.Generate(rand.Reader)
	require.NoError(t, err)

	assert.Len(t, key, keys.Size)
	assert.True(t, key.Valid())

	other, err := keys.Generate(rand.Reader)
	require.NoError(t, err)

	assert.NotEqual(t, key, other)
}

func TestGenerateUsesGivenSource(t *testing.T) {
	t.Parallel()

	source := bytes.Repeat([]byte{0xAB}, keys.Size)

	key, err := keys.Generate(bytes.NewReader(source))
	require.NoError(t, err)

	assert.Equal(t, source, []byte(key))
}

func TestGenerateShortSource(t *testing.T) {
	t.Parallel()

	_, err := keys.Generate(bytes.NewReader(make([]byte, keys.Size-1)))
	require.ErrorIs(t, err, keys.ErrEntropy)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	key, err := keys.Generate(rand.Reader)
	require.NoError(t, err)

	decoded, err := keys.Decode(key.Token())
	require.NoError(t, err)

	assert.Equal(t, key, decoded)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"not base64!", "abc", "====", "mKmYyAFP8QMZDQPKCzAJsPwjXt7dpG0BrgbN7RhxQ+M"} {
		_, err := keys.Decode(token)
		require.ErrorIs(t, err, keys.ErrMalformedToken, "token %q", token)
	}
}

func TestDecodeWrongLength(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 16, 31, 33, 64} {
		token := base64.StdEncoding.EncodeToString(make([]byte, size))

		_, err := keys.Decode(token)
		require.Error(t, err, "size %d", size)
		assert.True(t, errors.Is(err, keys.ErrWrongLength), "size %d: %v", size, err)
	}
}

func TestDecodeKnownToken(t *testing.T) {
	t.Parallel()

	key, err := keys.Decode("mKmYyAFP8QMZDQPKCzAJsPwjXt7dpG0BrgbN7RhxQ+M=")
	require.NoError(t, err)

	assert.Len(t, key, keys.Size)
}

func TestZero(t *testing.T) {
	t.Parallel()

	key, err := keys.Generate(rand.Reader)
	require.NoError(t, err)

	key.Zero()

	assert.Equal(t, make([]byte, keys.Size), []byte(key))
}
