package errors

import (
	"strings"
	"sync/atomic"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

// detailWidth is the wrap column for Detail paragraphs.
const detailWidth = 70

var plain atomic.Bool

// DisableColors makes Format emit plain text. The CLI calls it when stdout
// is not a terminal or --no-color is set.
func DisableColors() { plain.Store(true) }

// EnableColors restores ANSI output.
func EnableColors() { plain.Store(false) }

func paint(text string, codes ...string) string {
	if plain.Load() || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error as a multi-line block for a terminal: a headline,
// the wrapped detail, then the cause and hint when present.
func (e *Error) Format() string {
	var b strings.Builder

	head := "ERROR: "
	if e.Code != "" {
		head = "ERROR " + e.Code + ": "
	}
	b.WriteString(paint(head, ansiBold, ansiRed))
	b.WriteString(paint(e.Message, ansiBold))
	b.WriteByte('\n')

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		b.WriteByte('\n')
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}
	if e.Wrapped != nil {
		b.WriteString("\n  " + paint("Cause: ", ansiGray) + e.Wrapped.Error() + "\n")
	}
	if e.Suggestion != "" {
		b.WriteString("\n  " + paint("Hint: ", ansiCyan) + e.Suggestion + "\n")
	}
	return b.String()
}

// wrapText breaks text on spaces so no line exceeds width, except a single
// word longer than width.
func wrapText(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
