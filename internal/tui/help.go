package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpWidth bounds the help text wrap width for a terminal width
func helpWidth(termWidth int) int {
	return min(max(termWidth-12, 40), 90)
}

// helpMarkdown lists every binding as a markdown table per section
func helpMarkdown(keys KeyMap) string {
	var b strings.Builder
	b.WriteString("# Keys\n")
	for _, section := range keys.HelpSections() {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", section.Title)
		for _, binding := range section.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nPress `?` or `esc` to return.\n")
	return b.String()
}

// renderHelp renders the help markdown for the terminal, falling back to
// the raw markdown when rendering fails
func renderHelp(keys KeyMap, width int, logger *slog.Logger) string {
	md := helpMarkdown(keys)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Debug("failed to create markdown renderer, showing raw help", "error", err)
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		logger.Debug("failed to render help markdown, showing raw help", "error", err)
		return md
	}
	return strings.TrimSpace(rendered)
}
