package secrets_test

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptobro/internal/keys"
	"github.com/idelchi/cryptobro/internal/secrets"
)

func TestBase64Keys(t *testing.T) {
	t.Parallel()

	gen := secrets.New(rand.Reader)

	for _, kind := range []secrets.Kind{secrets.OpenSSLKey, secrets.RingKey, secrets.APIKey} {
		value, err := gen.Generate(kind)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(value)
		require.NoError(t, err)
		assert.Len(t, raw, 32, kind.Description())

		key, err := keys.Decode(value)
		require.NoError(t, err, kind.Description())
		assert.Equal(t, value, key.Token())
	}
}

func TestBase64KeyUsesSource(t *testing.T) {
	t.Parallel()

	source := bytes.Repeat([]byte{0x01}, keys.Size)

	value, err := secrets.New(bytes.NewReader(source)).Base64Key()
	require.NoError(t, err)
	assert.Equal(t, keys.Key(source).Token(), value)

	_, err = secrets.New(bytes.NewReader(source[:keys.Size-1])).Base64Key()
	require.ErrorIs(t, err, keys.ErrEntropy)
}

func TestUUID(t *testing.T) {
	t.Parallel()

	value, err := secrets.New(rand.Reader).Generate(secrets.UUID)
	require.NoError(t, err)

	id, err := uuid.Parse(value)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
}

func TestPasswords(t *testing.T) {
	t.Parallel()

	gen := secrets.New(rand.Reader)

	for kind, length := range map[secrets.Kind]int{secrets.Password16: 16, secrets.Password32: 32} {
		value, err := gen.Generate(kind)
		require.NoError(t, err)
		assert.Len(t, value, length)

		for _, char := range value {
			assert.True(t, strings.ContainsRune(secrets.PasswordCharset, char), "unexpected %q", char)
		}
	}

	_, err := gen.Password(0)
	require.Error(t, err)
}

func TestUsername(t *testing.T) {
	t.Parallel()

	gen := secrets.New(rand.Reader).WithWords([]string{"Quiet"}, []string{"Otter"})

	seen := map[string]bool{}

	for range 200 {
		value, err := gen.Generate(secrets.Username)
		require.NoError(t, err)

		seen[value] = true
	}

	assert.Equal(t, map[string]bool{"Quiet_Otter": true, "QuietOtter": true}, seen)
}

func TestUsernameEmbeddedLists(t *testing.T) {
	t.Parallel()

	value, err := secrets.New(rand.Reader).Username()
	require.NoError(t, err)
	assert.NotEmpty(t, value)

	_, err = secrets.New(rand.Reader).WithWords(nil, nil).Username()
	require.Error(t, err)
}

func TestExhaustedSource(t *testing.T) {
	t.Parallel()

	gen := secrets.New(bytes.NewReader(nil))

	for _, kind := range secrets.Kinds {
		_, err := gen.Generate(kind)
		require.Error(t, err, kind.Description())
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for i, want := range secrets.Kinds {
		got, err := secrets.ParseKind(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, n := range []int{0, 8, -1} {
		_, err := secrets.ParseKind(n)
		require.ErrorIs(t, err, secrets.ErrUnknownKind)
	}

	_, err := secrets.New(rand.Reader).Generate(secrets.Kind(99))
	require.ErrorIs(t, err, secrets.ErrUnknownKind)
}
