// Package cli renders engine results and diagnostics for the terminal.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/weave/internal/engine"
)

var (
	// sourceStyle for echoed source
	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// errorStyle for error output
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// warnStyle for diagnostics
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// successStyle for completion lines
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// headerBoxStyle for the render summary
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// FormatItems writes an output-record sequence to the terminal, one
// styled section per record.
func FormatItems(w io.Writer, items []engine.OutputItem) {
	for _, it := range items {
		switch it.Kind {
		case engine.ItemSourceEcho:
			for _, line := range strings.Split(strings.TrimRight(it.Text, "\n"), "\n") {
				fmt.Fprintf(w, "%s %s\n", dimStyle.Render(">"), sourceStyle.Render(line))
			}
		case engine.ItemTextOutput:
			fmt.Fprint(w, it.Text)
			if !strings.HasSuffix(it.Text, "\n") {
				fmt.Fprintln(w)
			}
		case engine.ItemGraphic:
			fmt.Fprintf(w, "%s %s\n", dimStyle.Render("[plot]"), it.Artifact.Path)
		case engine.ItemError:
			fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), strings.TrimRight(it.Text, "\n"))
		}
	}
}

// FormatDiagnostics writes side-channel warnings.
func FormatDiagnostics(w io.Writer, diags []engine.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s %s\n", warnStyle.Render("Warning:"), d.Message)
	}
}

// FormatRenderSummary writes the post-build summary box.
func FormatRenderSummary(w io.Writer, outPath string, chunks, warnings int) {
	content := fmt.Sprintf("%s %s\n%s %d  %s %d",
		dimStyle.Render("Output:"), successStyle.Render(outPath),
		dimStyle.Render("Chunks:"), chunks,
		dimStyle.Render("Warnings:"), warnings,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}
