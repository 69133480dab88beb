// Package render turns assistant replies, which are Markdown, into terminal output.
package render

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the terminal width cannot be read.
	DefaultWidth = 80
	// MinWidth keeps wrapping readable on very narrow terminals.
	MinWidth = 40
)

// Renderer renders Markdown. A Renderer whose glamour setup failed passes
// content through unchanged.
type Renderer struct {
	term *glamour.TermRenderer
}

// New builds a Renderer wrapping at width columns with the style picked
// from the terminal background. Extra glamour options override the defaults.
func New(width int, opts ...glamour.TermRendererOption) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	options := append([]glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	}, opts...)

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{term: tr}
}

// Raw returns a Renderer that never formats.
func Raw() *Renderer {
	return &Renderer{}
}

// Render returns content rendered as Markdown, or content itself when
// rendering is unavailable or fails.
func (r *Renderer) Render(content string) string {
	if r == nil || r.term == nil || content == "" {
		return content
	}
	out, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return out
}

// TerminalWidth returns the width of stdout, clamped to MinWidth, or
// DefaultWidth when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	if width < MinWidth {
		return MinWidth
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
