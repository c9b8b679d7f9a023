package vault

import (
	"errors"
	"fmt"

	"github.com/idelchi/cryptobro/internal/encryption"
	"github.com/idelchi/cryptobro/internal/filter"
	"github.com/idelchi/cryptobro/internal/sizeguard"
)

var (
	// ErrNoFileSelected is returned when the namespace is empty or the index is out of range.
	ErrNoFileSelected = filter.ErrNoFileSelected
	// ErrFileTooLarge is returned when the selected file exceeds the admission limit.
	ErrFileTooLarge = sizeguard.ErrFileTooLarge
	// ErrInvalidKey is returned when an unpack token is malformed or has the wrong length.
	ErrInvalidKey = errors.New("invalid key")
	// ErrDecryptionFailed is returned on a wrong key or a corrupted or foreign file.
	ErrDecryptionFailed = encryption.ErrDecryptionFailed
	// ErrCancelled is returned when the operator abandons key acquisition.
	ErrCancelled = errors.New("cancelled by operator")
	// ErrIO is returned when reading the source or writing the output fails.
	ErrIO = errors.New("i/o failure")
)

// Error records a rejected operation. Stage is always Rejected; FailedAt is
// the stage that was running when the operation was rejected.
type Error struct {
	Op       string
	Stage    State
	FailedAt State
	Path     string
	Err      error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ioError tags err as an I/O failure while keeping the underlying cause inspectable.
func ioError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}
