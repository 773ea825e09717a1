// Package output provides consistent CLI output formatting.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/ui"
)

const descriptionWidth = 150

// Writer provides formatted output for CLI commands.
type Writer struct {
	out    io.Writer
	styles ui.Styles
}

// New creates a Writer, picking colored styles only for real terminals.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: ui.StylesFor(out),
	}
}

// NewPlain creates a Writer that never emits color.
func NewPlain(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: ui.NoColorStyles(),
	}
}

// Styles exposes the active style set for callers that render directly.
func (w *Writer) Styles() ui.Styles {
	return w.styles
}

// Status prints an indented status line.
// Write errors are intentionally ignored for console output.
func (w *Writer) Status(msg string) {
	_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
}

// Statusf prints a formatted status line.
func (w *Writer) Statusf(format string, args ...any) {
	w.Status(fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (w *Writer) Success(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s\n", w.styles.Success.Render("✓ "+msg))
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s\n", w.styles.Warning.Render("! "+msg))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s\n", w.styles.Error.Render("✗ "+msg))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Header prints a section header.
func (w *Writer) Header(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s\n", w.styles.Header.Render(msg))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Repo prints one repository entry with its rank.
func (w *Writer) Repo(rank int, r store.Repo) {
	_, _ = fmt.Fprintf(w.out, "%d. %s %s\n",
		rank,
		w.styles.Repo.Render(r.FullName),
		w.styles.Stars.Render(fmt.Sprintf("★ %d", r.Stars)))

	if r.Description != "" {
		w.Status(w.styles.Desc.Render(truncate(r.Description, descriptionWidth)))
	}
	w.Status(w.styles.URL.Render(r.URL))
}

// truncate shortens s to n runes and appends an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n]), " ") + "..."
}
