package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be set up (plain pipes, unknown terminals).
func printMarkdown(content string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Print(content)
		return
	}
	out, err := r.Render(content)
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
