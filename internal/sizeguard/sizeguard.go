// Package sizeguard bounds the size of files admitted into the pack/unpack pipeline.
//
// The ceiling is a quarter of the memory currently available to the system,
// read afresh on every call. When available memory cannot be determined a
// fixed fallback applies.
package sizeguard

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/mem"
)

// Fallback is the limit used when available memory cannot be read.
const Fallback uint64 = 5 * 1024 * 1024

// divisor is the share of available memory a single file may occupy.
const divisor = 4

// ErrFileTooLarge is returned (wrapped in a *TooLargeError) when a file exceeds the limit.
var ErrFileTooLarge = errors.New("file too large")

// TooLargeError reports the limit in force and the rejected size.
type TooLargeError struct {
	Limit uint64
	Size  uint64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s exceeds the limit of %s",
		humanize.IBytes(e.Size), humanize.IBytes(e.Limit))
}

// Unwrap lets errors.Is match ErrFileTooLarge.
func (e *TooLargeError) Unwrap() error {
	return ErrFileTooLarge
}

// MemoryReader returns the number of bytes of memory currently available.
type MemoryReader func() (uint64, error)

// Guard computes and enforces the admission limit.
type Guard struct {
	available MemoryReader
}

// New returns a Guard that consults available on every check.
// A nil reader always yields Fallback.
func New(available MemoryReader) *Guard {
	return &Guard{available: available}
}

// Default returns a Guard backed by the operating system's memory statistics.
func Default() *Guard {
	return New(SystemAvailable)
}

// SystemAvailable reads available memory via gopsutil (MemAvailable on Linux).
func SystemAvailable() (uint64, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("reading memory statistics: %w", err)
	}

	return stat.Available, nil
}

// Limit returns the current admission ceiling in bytes.
func (g *Guard) Limit() uint64 {
	if g.available == nil {
		return Fallback
	}

	available, err := g.available()
	if err != nil || available == 0 {
		return Fallback
	}

	return available / divisor
}

// Check rejects sizes strictly above the current limit.
func (g *Guard) Check(size int64) error {
	limit := g.Limit()

	if size < 0 {
		return fmt.Errorf("invalid file size %d", size)
	}

	if uint64(size) > limit {
		return &TooLargeError{Limit: limit, Size: uint64(size)}
	}

	return nil
}

// Describe renders the current limit for display, e.g. "1.5 GiB".
func (g *Guard) Describe() string {
	return humanize.IBytes(g.Limit())
}
