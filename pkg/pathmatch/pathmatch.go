// Package pathmatch implements find -path style glob matching for candidate file names.
//
// It follows fnmatch(3) without FNM_PATHNAME:
//   - * matches any run of characters, / included
//   - ? matches exactly one character
//   - [...] and [!...] match one character from (or outside) the set
//   - \ escapes the next character
//
// Unlike filepath.Match, * crosses directory separators.
package pathmatch

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher holds a set of compiled patterns.
// The zero value matches nothing.
type Matcher struct {
	patterns []string
	compiled []*regexp.Regexp
}

// Match reports whether name matches pattern.
func Match(pattern, name string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(name), nil
}

// NewMatcher compiles patterns once for repeated use.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{
		patterns: make([]string, 0, len(patterns)),
		compiled: make([]*regexp.Regexp, 0, len(patterns)),
	}

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(pattern, "./")

		re, err := compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		matcher.patterns = append(matcher.patterns, pattern)
		matcher.compiled = append(matcher.compiled, re)
	}

	return matcher, nil
}

// Empty reports whether the matcher holds no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.compiled) == 0
}

// MatchAny reports whether name matches at least one pattern.
func (m *Matcher) MatchAny(name string) bool {
	if m == nil {
		return false
	}

	for _, re := range m.compiled {
		if re.MatchString(name) {
			return true
		}
	}

	return false
}

// Patterns returns the normalized source patterns.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}

	return append([]string(nil), m.patterns...)
}

func compile(pattern string) (*regexp.Regexp, error) {
	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	return re, nil
}

// translate converts a glob into an anchored regular expression.
func translate(pattern string) (string, error) {
	var expr strings.Builder

	expr.WriteString(`^`)

	for pos := 0; pos < len(pattern); pos++ {
		switch pattern[pos] {
		case '*':
			expr.WriteString(`.*`)
		case '?':
			expr.WriteString(`.`)
		case '\\':
			if pos == len(pattern)-1 {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			pos++
			expr.WriteString(regexp.QuoteMeta(pattern[pos : pos+1]))
		case '[':
			end, err := classEnd(pattern, pos)
			if err != nil {
				return "", err
			}

			expr.WriteString(bracketClass(pattern[pos+1 : end]))

			pos = end
		default:
			// Byte-wise quoting keeps multi-byte runes intact.
			expr.WriteString(regexp.QuoteMeta(pattern[pos : pos+1]))
		}
	}

	expr.WriteString(`$`)

	return expr.String(), nil
}

// classEnd returns the index of the ] closing the class opened at start.
// A ] directly after [ or [! is a literal member.
func classEnd(pattern string, start int) (int, error) {
	pos := start + 1

	if pos < len(pattern) && pattern[pos] == '!' {
		pos++
	}

	if pos < len(pattern) && pattern[pos] == ']' {
		pos++
	}

	if end := strings.IndexByte(pattern[pos:], ']'); end >= 0 {
		return pos + end, nil
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}

// bracketClass renders the body of a glob class as a regexp class.
func bracketClass(body string) string {
	var class strings.Builder

	class.WriteString(`[`)

	if strings.HasPrefix(body, "!") {
		class.WriteString(`^`)

		body = body[1:]
	}

	for idx, char := range body {
		switch {
		case char == ']' && idx == 0:
			class.WriteString(`\]`)
		case char == '\\' || char == '^' || char == '[':
			class.WriteString(`\` + string(char))
		default:
			class.WriteRune(char)
		}
	}

	class.WriteString(`]`)

	return class.String()
}
