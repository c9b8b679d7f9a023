// Package secrets generates the secrets offered by the main menu.
//
// Every generator draws from the random source handed to New; there is no
// package-level generator state.
package secrets

import (
	"bufio"
	"bytes"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/idelchi/cryptobro/internal/keys"
)

// Kind selects what to generate. Values match the menu numbering.
type Kind int

// Available kinds.
const (
	OpenSSLKey Kind = iota + 1
	RingKey
	UUID
	APIKey
	Password16
	Password32
	Username
)

// Kinds lists every kind in menu order.
var Kinds = []Kind{OpenSSLKey, RingKey, UUID, APIKey, Password16, Password32, Username} //nolint:gochecknoglobals

// ErrUnknownKind is returned for kinds outside the menu.
var ErrUnknownKind = errors.New("unknown secret kind")

// Title is the menu label.
func (k Kind) Title() string {
	switch k {
	case OpenSSLKey:
		return "OpenSSL Cryptographic Key"
	case RingKey:
		return "Ring Cryptographic Key"
	case UUID:
		return "UUID"
	case APIKey:
		return "API Key"
	case Password16, Password32:
		return "Password"
	case Username:
		return "Username"
	default:
		return "Unknown"
	}
}

// Description is the format shown next to a generated value.
func (k Kind) Description() string {
	switch k {
	case OpenSSLKey:
		return "Base64 encoded, 256-bit (OpenSSL)"
	case RingKey:
		return "Base64 encoded, 256-bit (Ring)"
	case UUID:
		return "UUID (v4)"
	case APIKey:
		return "Base64 encoded, 256-bit (API Key)"
	case Password16:
		return "16-character password"
	case Password32:
		return "32-character password"
	case Username:
		return "Username (Word list generated)"
	default:
		return "unknown"
	}
}

// ParseKind validates a menu number.
func ParseKind(n int) (Kind, error) {
	kind := Kind(n)
	if kind < OpenSSLKey || kind > Username {
		return 0, fmt.Errorf("%w: %d (choose 1-%d)", ErrUnknownKind, n, len(Kinds))
	}

	return kind, nil
}

const (
	// PasswordCharset is the alphabet passwords are drawn from.
	PasswordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()-_=+"

	// underscorePercent is the chance a username joins its words with "_".
	underscorePercent = 72
)

var (
	//go:embed words/descriptors.txt
	descriptorList []byte
	//go:embed words/names.txt
	nameList []byte
)

// Generator produces secrets from an explicit random source.
type Generator struct {
	random      io.Reader
	descriptors []string
	names       []string
}

// New returns a Generator using the embedded word lists.
// Pass crypto/rand.Reader outside of tests.
func New(random io.Reader) *Generator {
	return &Generator{
		random:      random,
		descriptors: words(descriptorList),
		names:       words(nameList),
	}
}

// WithWords replaces the username word lists.
func (g *Generator) WithWords(descriptors, names []string) *Generator {
	g.descriptors = descriptors
	g.names = names

	return g
}

// Generate dispatches on kind.
func (g *Generator) Generate(kind Kind) (string, error) {
	switch kind {
	case OpenSSLKey, RingKey, APIKey:
		return g.Base64Key()
	case UUID:
		return g.UUID()
	case Password16:
		return g.Password(16) //nolint:mnd
	case Password32:
		return g.Password(32) //nolint:mnd
	case Username:
		return g.Username()
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// Base64Key returns the token of a fresh 32-byte key, the same form pack prints.
func (g *Generator) Base64Key() (string, error) {
	key, err := keys.Generate(g.random)
	if err != nil {
		return "", err
	}
	defer key.Zero()

	return key.Token(), nil
}

// UUID returns a version 4 UUID.
func (g *Generator) UUID() (string, error) {
	id, err := uuid.NewRandomFromReader(g.random)
	if err != nil {
		return "", fmt.Errorf("generating uuid: %w", err)
	}

	return id.String(), nil
}

// Password returns length characters drawn uniformly from PasswordCharset.
func (g *Generator) Password(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid password length %d", length)
	}

	var password strings.Builder

	password.Grow(length)

	for range length {
		idx, err := g.intn(len(PasswordCharset))
		if err != nil {
			return "", err
		}

		password.WriteByte(PasswordCharset[idx])
	}

	return password.String(), nil
}

// Username joins a random descriptor and name, usually with an underscore.
func (g *Generator) Username() (string, error) {
	if len(g.descriptors) == 0 || len(g.names) == 0 {
		return "", errors.New("username word lists are empty")
	}

	d, err := g.intn(len(g.descriptors))
	if err != nil {
		return "", err
	}

	n, err := g.intn(len(g.names))
	if err != nil {
		return "", err
	}

	roll, err := g.intn(100) //nolint:mnd
	if err != nil {
		return "", err
	}

	separator := ""
	if roll < underscorePercent {
		separator = "_"
	}

	return g.descriptors[d] + separator + g.names[n], nil
}

// intn returns a uniform value in [0, n).
func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}

	return int(v.Int64()), nil
}

func words(list []byte) []string {
	var out []string

	scanner := bufio.NewScanner(bytes.NewReader(list))
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			out = append(out, word)
		}
	}

	return out
}
