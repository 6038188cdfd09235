// Package tui provides terminal output helpers using charmbracelet libraries.
// Styled output is only produced when writing to a terminal, so piping
// `msysprefix list` into other tools yields plain tab separated text.
//
// Environment Variables:
//   - NO_COLOR or MSYSPREFIX_NO_COLOR: Disable styling (respects https://no-color.org/)
//   - TERM=dumb: Disable styling
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/dorcha-inc/msysprefix/internal/core"
)

var (
	colorBlue = lipgloss.ANSIColor(4) // ANSI blue
	colorGray = lipgloss.ANSIColor(8) // ANSI gray (bright black)
)

// IsTerminal checks if a file descriptor is connected to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isColorDisabled checks if colors are explicitly disabled
func isColorDisabled() bool {
	if core.GetEnv("NO_COLOR") != "" {
		return true
	}
	return os.Getenv("TERM") == "dumb"
}

// ShouldStyle reports whether styled output should be written to w.
// Only terminals get styling.
func ShouldStyle(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTerminal(f) && !isColorDisabled()
}

// RenderTable writes headers and rows to w. Styled tables use a lipgloss
// border; plain tables are aligned with a tabwriter.
func RenderTable(w io.Writer, headers []string, rows [][]string, styled bool) error {
	if styled {
		return renderStyledTable(w, headers, rows)
	}
	return renderPlainTable(w, headers, rows)
}

func renderPlainTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return tw.Flush()
}

func renderStyledTable(w io.Writer, headers []string, rows [][]string) error {
	renderer := lipgloss.NewRenderer(w)
	headerStyle := renderer.NewStyle().Foreground(colorBlue).Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)
	borderStyle := renderer.NewStyle().Foreground(colorGray)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
