// Package formatter normalises generated C# source: indentation by brace
// depth, trailing whitespace and line endings.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/errors"
)

// Formatter is responsible for formatting C# code according to the configured layout
type Formatter struct {
	indent  string
	newline string
}

// NewFormatter creates a new Formatter instance with the default layout
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig().Formatting)
}

// NewFormatterWithConfig creates a Formatter from the formatting section of the config.
func NewFormatterWithConfig(cfg config.FormattingConfig) *Formatter {
	f := &Formatter{indent: strings.Repeat(" ", config.DefaultIndentSize), newline: "\n"}
	if cfg.UseTabs {
		f.indent = "\t"
	} else if cfg.IndentSize > 0 {
		f.indent = strings.Repeat(" ", cfg.IndentSize)
	}
	if strings.EqualFold(cfg.LineEnding, "crlf") {
		f.newline = "\r\n"
	}
	return f
}

// Format re-indents code by brace depth and returns it with a single trailing
// newline. Braces inside string and character literals and after // are ignored.
func (f *Formatter) Format(code string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	blank := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Runs of blank lines collapse to one.
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false

		opens, closes, leading := countBraces(trimmed)
		level := depth - leading
		if level < 0 {
			return "", unbalanced(fmt.Sprintf("unexpected '}' on line %d", i+1))
		}
		out = append(out, strings.Repeat(f.indent, level)+trimmed)

		depth += opens - closes
		if depth < 0 {
			return "", unbalanced(fmt.Sprintf("unexpected '}' on line %d", i+1))
		}
	}

	if depth != 0 {
		return "", unbalanced(fmt.Sprintf("%d unclosed '{' at end of input", depth))
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, f.newline) + f.newline, nil
}

// accessorBlock ends every generated property declaration.
const accessorBlock = "{ get; set; }"

// countBraces counts the braces of one line that are code, plus the number
// of closing braces the line starts with. A property declaration opens and
// closes its accessor block on the same line, and its name may be a JSON key
// kept verbatim, so it counts as brace-neutral.
func countBraces(line string) (opens, closes, leading int) {
	if strings.HasSuffix(line, accessorBlock) {
		return 0, 0, 0
	}
	inLeading := true
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '"', '\'':
			i = skipLiteral(line, i)
			inLeading = false
			continue
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return opens, closes, leading
			}
		case '{':
			opens++
		case '}':
			closes++
			if inLeading {
				leading++
				continue
			}
		case ' ', '\t':
			continue
		}
		inLeading = false
	}
	return opens, closes, leading
}

// skipLiteral returns the index of the quote closing the literal opened at start.
func skipLiteral(line string, start int) int {
	quote := line[start]
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(line)
}

func unbalanced(detail string) error {
	return errors.NewFormatError("unbalanced braces: "+detail, errors.ErrUnbalancedBraces)
}
