// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DirPerm is used for namespaces created on demand.
	DirPerm os.FileMode = 0o700
	// FilePerm is used for every file the vault writes.
	FilePerm os.FileMode = 0o600
)

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	fs      afero.Fs
	TmpFile afero.File
	TmpName string
}

// NewTempContext creates the directory of outPath if needed and a temp file beside it.
// Caller must defer CleanupOnError.
func NewTempContext(fsys afero.Fs, outPath string) (*TempContext, error) {
	dir := filepath.Dir(outPath)

	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return nil, fmt.Errorf("creating directory %q: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(fsys, dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file in %q: %w", dir, err)
	}

	return &TempContext{
		fs:      fsys,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup

	if *errp != nil {
		tc.fs.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// Commit closes the temp file and renames it over outPath, replacing any existing file.
func (tc *TempContext) Commit(outPath string) error {
	if err := tc.fs.Chmod(tc.TmpName, FilePerm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := tc.fs.Rename(tc.TmpName, outPath); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}

// WriteFile atomically replaces outPath with data and returns the written size.
func WriteFile(fsys afero.Fs, outPath string, data []byte) (size int64, err error) {
	tc, err := NewTempContext(fsys, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return 0, fmt.Errorf("writing %q: %w", tc.TmpName, err)
	}

	if err = tc.Commit(outPath); err != nil {
		return 0, err
	}

	info, err := fsys.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return info.Size(), nil
}
