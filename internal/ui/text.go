package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}

	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// DisableColor turns colour off for the rest of the process.
func DisableColor() {
	color.NoColor = true
}

func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}

	return color.NoColor
}

// Semantic formatters for the menus.
//
//nolint:gochecknoglobals
var (
	// Success marks completed operations and greetings.
	Success = Formatter{color.New(color.FgGreen), "", ""}
	// Error marks failures.
	Error = Formatter{color.New(color.FgHiRed), "", ""}
	// Warning marks instructions the operator must not miss.
	Warning = Formatter{color.New(color.FgHiYellow), "", ""}
	// Secret renders generated values; brackets keep them visible without colour.
	Secret = Formatter{color.New(color.FgHiCyan), "[", "]"}
	// Kind renders the description of a generated value.
	Kind = Formatter{color.New(color.FgHiMagenta), "(", ")"}
	// Path formats file or directory paths.
	Path = Formatter{color.New(color.FgCyan), "", ""}
	// Digest renders checksums.
	Digest = Formatter{color.New(color.FgMagenta), "", ""}
	// Muted formats secondary text.
	Muted = Formatter{color.New(color.FgHiBlack), "", ""}
)

// Rule is the separator printed between screens.
const Rule = "________________________________"
