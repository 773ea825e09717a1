package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// StylesFor picks styles for a writer: colored only for a real terminal
// without NO_COLOR set.
func StylesFor(w io.Writer) Styles {
	if !IsTTY(w) || DetectNoColor() {
		return NoColorStyles()
	}
	return DefaultStyles()
}
