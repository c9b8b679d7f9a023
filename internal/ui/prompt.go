package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads operator answers from a line-oriented input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal backing in, or -1 when in is not a terminal.
	fd int
}

// NewPrompter reads from in and writes prompts to out.
// Hidden input is used for secrets when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fd = int(file.Fd())
	}

	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Line prints prompt and returns the trimmed answer.
// io.EOF is returned once input is exhausted with nothing read.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Choice is Line lower-cased.
func (p *Prompter) Choice(prompt string) (string, error) {
	answer, err := p.Line(prompt)

	return strings.ToLower(answer), err
}

// Secret reads a value without echo when attached to a terminal.
func (p *Prompter) Secret(prompt string) (string, error) {
	if p.fd < 0 {
		return p.Line(prompt)
	}

	fmt.Fprint(p.out, prompt)

	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)

	if err != nil {
		return "", fmt.Errorf("reading hidden input: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}
