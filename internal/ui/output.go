package ui

import (
	"fmt"
	"strings"
)

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Success returns a success message with checkmark symbol
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Error returns an error message with X symbol
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Warning returns a warning message with warning symbol
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Header returns a styled section header
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath returns an accent-styled file path
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Field is a labelled value in a summary block.
type Field struct {
	Label string
	Value string
}

// SummaryLines renders fields as "Label: value" lines with labels padded to
// a common width.
func SummaryLines(fields []Field) []string {
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := f.Label + strings.Repeat(" ", width-len(f.Label))
		lines = append(lines, fmt.Sprintf("%s: %s", Muted.Render(label), Accent.Render(f.Value)))
	}
	return lines
}
