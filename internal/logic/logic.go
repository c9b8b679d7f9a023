// Package logic drives the interactive menus on top of the vault and the secret generator.
package logic

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/cryptobro/internal/filter"
	"github.com/idelchi/cryptobro/internal/secrets"
	"github.com/idelchi/cryptobro/internal/sizeguard"
	"github.com/idelchi/cryptobro/internal/ui"
	"github.com/idelchi/cryptobro/internal/vault"
)

// Greeting is printed under the banner.
const Greeting = "Hello, friend."

// errQuit unwinds every menu loop when the operator asks to quit.
var errQuit = errors.New("quit")

// Options wires a Session to its environment.
type Options struct {
	// Fs holds the data namespaces and pattern files.
	Fs afero.Fs
	// In and Out carry the operator dialogue.
	In  io.Reader
	Out io.Writer
	// Random supplies keys, IVs, secrets and the banner font.
	Random io.Reader
	// Guard bounds intake. Nil uses live system memory.
	Guard *sizeguard.Guard
	Log   logrus.FieldLogger
	// Copy places a secret on the clipboard. Nil uses the system clipboard.
	Copy func(string) error
}

// Session is one interactive run of the tool.
type Session struct {
	cfg    *config.Config
	prompt *ui.Prompter
	out    io.Writer
	random io.Reader
	guard  *sizeguard.Guard
	gen    *secrets.Generator
	copy   func(string) error

	// packer lists the data namespace through the include/exclude filter,
	// unpacker lists every envelope.
	packer   *vault.Vault
	unpacker *vault.Vault
}

// New builds a Session from the configuration.
func New(cfg *config.Config, opts Options) (*Session, error) {
	flt, err := buildFilter(opts.Fs, cfg)
	if err != nil {
		return nil, err
	}

	guard := opts.Guard
	if guard == nil {
		guard = sizeguard.Default()
	}

	clip := opts.Copy
	if clip == nil {
		clip = ui.Copy
	}

	return &Session{
		cfg:      cfg,
		prompt:   ui.NewPrompter(opts.In, opts.Out),
		out:      opts.Out,
		random:   opts.Random,
		guard:    guard,
		gen:      secrets.New(opts.Random),
		copy:     clip,
		packer:   vault.New(opts.Fs, filter.NewLister(opts.Fs, flt), guard, opts.Random, opts.Log),
		unpacker: vault.New(opts.Fs, filter.NewLister(opts.Fs, nil), guard, opts.Random, opts.Log),
	}, nil
}

// Run shows the main menu until the operator quits or input ends.
// A configured kind opens its generator screen first.
func (s *Session) Run() error {
	if s.cfg.Kind > 0 {
		kind, err := secrets.ParseKind(s.cfg.Kind)
		if err != nil {
			return err
		}

		if err := s.generate(kind); err != nil {
			return done(err)
		}
	}

	return done(s.menu())
}

func (s *Session) menu() error {
	for {
		fmt.Fprintln(s.out, ui.Banner(s.random, "cryptobro"))
		fmt.Fprintln(s.out, ui.Success.Sprint(Greeting))
		fmt.Fprintln(s.out)

		for _, kind := range secrets.Kinds {
			fmt.Fprintf(s.out, "  %d) %s %s\n", kind, kind.Title(), ui.Kind.Sprint(kind.Description()))
		}

		fmt.Fprintln(s.out, "  p) Pack a file")
		fmt.Fprintln(s.out, "  u) Unpack a file")
		fmt.Fprintln(s.out, "  q) Quit")

		choice, err := s.prompt.Choice("\nChoose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "p":
			err = s.pack()
		case "u":
			err = s.unpack()
		case "q":
			return errQuit
		default:
			err = s.generateChoice(choice)
		}

		if err != nil {
			return err
		}
	}
}

func (s *Session) generateChoice(choice string) error {
	n, err := strconv.Atoi(choice)
	if err != nil {
		fmt.Fprintln(s.out, ui.Error.Sprintf("Invalid option %q", choice))

		return nil
	}

	kind, err := secrets.ParseKind(n)
	if err != nil {
		fmt.Fprintln(s.out, ui.Error.Sprint(err))

		return nil
	}

	return s.generate(kind)
}

// generate shows one secret of kind and offers copy, regenerate, menu or quit.
func (s *Session) generate(kind secrets.Kind) error {
	for {
		value, err := s.gen.Generate(kind)
		if err != nil {
			return fmt.Errorf("generating %s: %w", kind.Title(), err)
		}

		fmt.Fprintln(s.out, ui.Rule)
		fmt.Fprintf(s.out, "%s %s\n", kind.Title(), ui.Kind.Sprint(kind.Description()))
		fmt.Fprintln(s.out, ui.Secret.Sprint(value))

		regenerate, err := s.afterGenerate(value)
		if err != nil || !regenerate {
			return err
		}
	}
}

// afterGenerate reports whether the operator asked for a new value.
func (s *Session) afterGenerate(value string) (bool, error) {
	for {
		choice, err := s.prompt.Choice("c) copy  r) regenerate  m) menu  q) quit: ")
		if err != nil {
			return false, err
		}

		switch choice {
		case "c":
			if err := s.copy(value); err != nil {
				fmt.Fprintln(s.out, ui.Error.Sprintf("Copy failed: %v", err))
			} else {
				fmt.Fprintln(s.out, ui.Success.Sprint("Copied to clipboard"))
			}
		case "r":
			return true, nil
		case "m":
			return false, nil
		case "q":
			return false, errQuit
		default:
			fmt.Fprintln(s.out, ui.Error.Sprintf("Invalid option %q", choice))
		}
	}
}

// done maps the ways a dialogue can end to a clean exit.
func done(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
