// Package filter enumerates the candidate files of a namespace directory.
//
// Listing is separate from selection: List touches the filesystem,
// SelectByIndex is a pure function over the listing.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/idelchi/cryptobro/pkg/pathmatch"
)

// ErrNoFileSelected is returned when a namespace is empty or an index is out of range.
var ErrNoFileSelected = errors.New("no valid file selected")

// FileRecord is a candidate file and its size at listing time.
type FileRecord struct {
	Path string
	Name string
	Size int64
}

// Filter selects candidates by base name.
// Empty includes means "match all". Excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
}

// NewFilter compiles include/exclude patterns into a reusable filter.
func NewFilter(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(includes)
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(excludes)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether name should be offered as a candidate.
// A nil filter matches everything.
func (f *Filter) Match(name string) bool {
	if f == nil {
		return true
	}

	included := f.includes.Empty() || f.includes.MatchAny(name)

	return included && !f.excludes.MatchAny(name)
}

// Lister lists candidate files from an afero filesystem.
type Lister struct {
	fs     afero.Fs
	filter *Filter
}

// NewLister returns a Lister over fsys. flt may be nil.
func NewLister(fsys afero.Fs, flt *Filter) *Lister {
	return &Lister{fs: fsys, filter: flt}
}

// List returns the regular files directly inside namespace, sorted by name.
// A missing namespace yields an empty listing.
func (l *Lister) List(namespace string) ([]FileRecord, error) {
	entries, err := afero.ReadDir(l.fs, namespace)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %q: %w", namespace, err)
	}

	records := make([]FileRecord, 0, len(entries))

	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}

		if !l.filter.Match(entry.Name()) {
			continue
		}

		records = append(records, FileRecord{
			Path: filepath.Join(namespace, entry.Name()),
			Name: entry.Name(),
			Size: entry.Size(),
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	return records, nil
}

// SelectByIndex returns the record at the zero-based index.
func SelectByIndex(records []FileRecord, index int) (FileRecord, error) {
	if len(records) == 0 {
		return FileRecord{}, fmt.Errorf("%w: no files found", ErrNoFileSelected)
	}

	if index < 0 || index >= len(records) {
		return FileRecord{}, fmt.Errorf("%w: index %d out of range [0, %d)", ErrNoFileSelected, index, len(records))
	}

	return records[index], nil
}
