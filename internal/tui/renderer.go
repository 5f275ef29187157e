package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown with glamour,
// picking a light or dark style from the detected background. When
// stdout is not a terminal the input is passed through untouched.
func NewRenderer() func(string) (string, error) {
	passthrough := func(markdown string) (string, error) {
		return markdown, nil
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return passthrough
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(96),
	)
	if err != nil {
		return passthrough
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
