package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptobro/internal/commands"
	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/cryptobro/internal/secrets"
)

// execute runs the root command with args and input and returns stdout.
func execute(t *testing.T, input string, args ...string) (*config.Config, string, error) {
	t.Helper()

	cfg := &config.Config{}
	root := commands.NewRootCommand(cfg, "test")

	var out, errOut bytes.Buffer

	root.SetArgs(append([]string{"--no-color"}, args...))
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()

	return cfg, out.String(), err
}

func TestGenerate(t *testing.T) {
	_, out, err := execute(t, "", "generate", "3")
	require.NoError(t, err)

	parsed, err := uuid.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	_, out, err = execute(t, "", "gen", "6")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 32)
}

func TestGenerateRejectsKind(t *testing.T) {
	_, _, err := execute(t, "", "generate", "8")
	require.ErrorIs(t, err, secrets.ErrUnknownKind)

	_, _, err = execute(t, "", "generate", "seven")
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg, _, err := execute(t, "q\n")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Data)
	assert.Equal(t, "data/encrypted", cfg.Encrypted)
	assert.Equal(t, "data/decrypted", cfg.Decrypted)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}

func TestEnvironmentBinding(t *testing.T) {
	t.Setenv("CRYPTOBRO_LOG_LEVEL", "debug")
	t.Setenv("CRYPTOBRO_ENCRYPTED_DIR", "vault")

	cfg, _, err := execute(t, "q\n")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "vault", cfg.Encrypted)
}

func TestValidation(t *testing.T) {
	_, _, err := execute(t, "", "--log-level", "loud")
	require.ErrorContains(t, err, "--log-level must be one of")

	_, _, err = execute(t, "", "--include", "[a-")
	require.ErrorContains(t, err, "--include[0] is an invalid pattern")

	_, _, err = execute(t, "", "--kind", "8")
	require.Error(t, err)
}

func TestShowExitsGracefully(t *testing.T) {
	_, out, err := execute(t, "q\n", "--show")
	require.ErrorIs(t, err, cobraext.ErrExitGracefully)
	assert.NotContains(t, out, "Hello, friend.")
}

func TestPreselectedKind(t *testing.T) {
	_, out, err := execute(t, "q\n", "-k", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "Username (Word list generated)")
	assert.NotContains(t, out, "Hello, friend.")
}

func TestPackAndUnpackCommands(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "plain")
	encrypted := filepath.Join(dir, "locked")
	decrypted := filepath.Join(dir, "unlocked")

	require.NoError(t, os.MkdirAll(data, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(data, "secrets.env"), []byte("hello-secrets"), 0o600))

	dirs := []string{"--data", data, "--encrypted-dir", encrypted, "--decrypted-dir", decrypted}

	_, out, err := execute(t, "1\na\n", append([]string{"pack"}, dirs...)...)
	require.NoError(t, err)

	match := regexp.MustCompile(`\[([A-Za-z0-9+/]{43}=)\]`).FindStringSubmatch(out)
	require.NotNil(t, match)

	_, err = os.Stat(filepath.Join(encrypted, "secrets.env.locked"))
	require.NoError(t, err)

	_, out, err = execute(t, "1\n"+match[1]+"\n", append([]string{"unpack"}, dirs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Verify checksum matches expected value")

	got, err := os.ReadFile(filepath.Join(decrypted, "secrets.env"))
	require.NoError(t, err)
	assert.Equal(t, "hello-secrets", string(got))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.env"), []byte("a"), 0o600))

	_, _, err := execute(t, "", "check", "--data", dir, "--include", "*.env")
	require.NoError(t, err)

	_, _, err = execute(t, "", "check", "--data", dir, "--include", "*.txt")
	require.ErrorContains(t, err, "matched no files")
}
