package logic

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/cryptobro/internal/filter"
	"github.com/idelchi/cryptobro/internal/ui"
	"github.com/idelchi/cryptobro/internal/vault"
)

// Pack lets the operator pick a file from the data namespace and lock it.
func (s *Session) Pack() error {
	return done(s.pack())
}

// Unpack lets the operator pick an envelope and unlock it with its key.
func (s *Session) Unpack() error {
	return done(s.unpack())
}

func (s *Session) pack() error {
	s.header("Pack a file", s.cfg.Data)

	records, err := s.packer.Candidates(s.cfg.Data)
	if err != nil {
		return err
	}

	index, back, err := s.choose(records)
	if err != nil || back {
		return err
	}

	var quit bool

	result, err := s.packer.Pack(vault.PackRequest{
		Source:      s.cfg.Data,
		Destination: s.cfg.Encrypted,
		Index:       index,
		Confirm: func(token string) (vault.Decision, error) {
			decision, err := s.confirmKey(token)
			if errors.Is(err, errQuit) {
				quit = true

				return vault.Cancel, nil
			}

			return decision, err
		},
	})

	switch {
	case quit:
		return errQuit
	case errors.Is(err, vault.ErrCancelled):
		fmt.Fprintln(s.out, ui.Warning.Sprint("Pack cancelled, nothing was written"))

		return nil
	case err != nil:
		return s.failed(err)
	}

	fmt.Fprintln(s.out, ui.Success.Sprint("File packed"))
	fmt.Fprintf(s.out, "  output:   %s (%s)\n", ui.Path.Sprint(result.Output), humanize.IBytes(uint64(result.Size)))
	fmt.Fprintf(s.out, "  sha256:   %s\n", ui.Digest.Sprint(result.Checksum))

	return nil
}

func (s *Session) confirmKey(token string) (vault.Decision, error) {
	fmt.Fprintln(s.out, ui.Rule)
	fmt.Fprintf(s.out, "Key %s\n", ui.Kind.Sprint("Base64 encoded, 256-bit"))
	fmt.Fprintln(s.out, ui.Secret.Sprint(token))
	fmt.Fprintln(s.out, ui.Warning.Sprint("Save this key now. It is shown only once and cannot be recovered."))

	for {
		choice, err := s.prompt.Choice("a) accept  r) regenerate  c) cancel  q) quit: ")
		if err != nil {
			return vault.Cancel, err
		}

		switch choice {
		case "a":
			return vault.Accept, nil
		case "r":
			return vault.Regenerate, nil
		case "c":
			return vault.Cancel, nil
		case "q":
			return vault.Cancel, errQuit
		default:
			fmt.Fprintln(s.out, ui.Error.Sprintf("Invalid option %q", choice))
		}
	}
}

func (s *Session) unpack() error {
	s.header("Unpack a file", s.cfg.Encrypted)

	records, err := s.unpacker.Candidates(s.cfg.Encrypted)
	if err != nil {
		return err
	}

	index, back, err := s.choose(records)
	if err != nil || back {
		return err
	}

	token, err := s.prompt.Secret("Enter key: ")
	if err != nil {
		return err
	}

	result, err := s.unpacker.Unpack(vault.UnpackRequest{
		Source:      s.cfg.Encrypted,
		Destination: s.cfg.Decrypted,
		Index:       index,
		Token:       token,
	})
	if err != nil {
		return s.failed(err)
	}

	fmt.Fprintln(s.out, ui.Success.Sprint("File unpacked"))
	fmt.Fprintf(s.out, "  output:   %s (%s)\n", ui.Path.Sprint(result.Output), humanize.IBytes(uint64(result.Size)))
	fmt.Fprintf(s.out, "  sha256:   %s\n", ui.Digest.Sprint(result.Checksum))
	fmt.Fprintln(s.out, ui.Warning.Sprint("Verify checksum matches expected value"))

	return nil
}

func (s *Session) header(title, namespace string) {
	fmt.Fprintln(s.out, ui.Rule)
	fmt.Fprintln(s.out, title)
	fmt.Fprintf(s.out, "  from:     %s\n", ui.Path.Sprint(namespace))
	fmt.Fprintf(s.out, "  max size: %s\n", s.guard.Describe())
}

// choose lists records and returns the zero-based index picked by the operator.
// Anything that is not a listed number is passed on as an invalid index so
// the vault rejects it at selection.
func (s *Session) choose(records []filter.FileRecord) (index int, back bool, err error) {
	if len(records) == 0 {
		fmt.Fprintln(s.out, ui.Muted.Sprint("  (no files)"))
	}

	for i, record := range records {
		fmt.Fprintf(s.out, "  %d) %s %s\n", i+1, record.Name, ui.Muted.Sprint(humanize.IBytes(uint64(record.Size))))
	}

	choice, err := s.prompt.Choice("Select a file, m) menu  q) quit: ")
	if err != nil {
		return 0, false, err
	}

	switch choice {
	case "m":
		return 0, true, nil
	case "q":
		return 0, false, errQuit
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		return -1, false, nil
	}

	return n - 1, false, nil
}

// failed reports a rejected operation and returns to the menu.
func (s *Session) failed(err error) error {
	fmt.Fprintln(s.out, ui.Error.Sprint(err))

	return nil
}
