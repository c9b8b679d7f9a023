package ui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardMismatch is returned when the clipboard does not hold what was written.
var ErrClipboardMismatch = errors.New("clipboard content does not match")

// Copy writes text to the system clipboard and reads it back.
// It fails unless the read-back matches text.
func Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}

	got, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("reading clipboard back: %w", err)
	}

	if got != text {
		return ErrClipboardMismatch
	}

	return nil
}
