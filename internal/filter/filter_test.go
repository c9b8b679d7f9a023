package filter_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptobro/internal/filter"
)

func seed(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()

	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o600))
	}
}

func TestListSortedRegularFiles(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"data/b.env":          "bb",
		"data/a.txt":          "a",
		"data/encrypted/x":    "nested",
		"data/c.env.locked":   "ccc",
		"elsewhere/ignored.x": "",
	})

	records, err := filter.NewLister(fsys, nil).List("data")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []filter.FileRecord{
		{Path: "data/a.txt", Name: "a.txt", Size: 1},
		{Path: "data/b.env", Name: "b.env", Size: 2},
		{Path: "data/c.env.locked", Name: "c.env.locked", Size: 3},
	}, records)
}

func TestListMissingNamespace(t *testing.T) {
	t.Parallel()

	records, err := filter.NewLister(afero.NewMemMapFs(), nil).List("nope")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListWithPatterns(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"in/a.env.locked":    "",
		"in/b.txt.locked":    "",
		"in/c.txt":           "",
		"in/skip.env.locked": "",
	})

	flt, err := filter.NewFilter([]string{"*.locked"}, []string{"skip*"})
	require.NoError(t, err)

	records, err := filter.NewLister(fsys, flt).List("in")
	require.NoError(t, err)

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{"a.env.locked", "b.txt.locked"}, names)
}

func TestNewFilterInvalid(t *testing.T) {
	t.Parallel()

	_, err := filter.NewFilter([]string{"[oops"}, nil)
	require.Error(t, err)

	_, err = filter.NewFilter(nil, []string{"trailing\\"})
	require.Error(t, err)
}

func TestSelectByIndex(t *testing.T) {
	t.Parallel()

	records := []filter.FileRecord{{Name: "a"}, {Name: "b"}}

	got, err := filter.SelectByIndex(records, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)

	for _, index := range []int{-1, 2, 100} {
		_, err := filter.SelectByIndex(records, index)
		require.ErrorIs(t, err, filter.ErrNoFileSelected, "index %d", index)
	}

	_, err = filter.SelectByIndex(nil, 0)
	require.ErrorIs(t, err, filter.ErrNoFileSelected)
}

func TestLoadPatterns(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	seed(t, fsys, map[string]string{
		"patterns.jsonc": `[
			// secrets only
			"*.env",
			"*.txt", /* trailing comma allowed */
		]`,
		"broken.jsonc": `{"not": "a list"}`,
	})

	patterns, err := filter.LoadPatterns(fsys, "patterns.jsonc")
	require.NoError(t, err)
	assert.Equal(t, []string{"*.env", "*.txt"}, patterns)

	_, err = filter.LoadPatterns(fsys, "broken.jsonc")
	require.Error(t, err)

	_, err = filter.LoadPatterns(fsys, "missing.jsonc")
	require.Error(t, err)
}
