package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/tspsearch/bench"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)

	styleBarFill  = lipgloss.NewStyle().Foreground(colorGreen)
	styleBarEmpty = lipgloss.NewStyle().Foreground(colorDim)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"

	barCells = 20
)

// =============================================================================
// Status Output
// =============================================================================

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// formatElapsed renders d as "<ns> ns (<ms> ms)".
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%d ns (%d ms)", d.Nanoseconds(), d.Milliseconds())
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// =============================================================================
// Progress Bar
// =============================================================================

// renderBar draws a 20-cell bar, one cell per 5%, followed by the percentage.
func renderBar(done, total int) string {
	if total <= 0 {
		total = 1
	}
	pct := float64(done) / float64(total) * 100
	filled := min(int(pct/5), barCells)

	return "[" + styleBarFill.Render(strings.Repeat("=", filled)) +
		styleBarEmpty.Render(strings.Repeat(" ", barCells-filled)) + "] " +
		styleNumber.Render(fmt.Sprintf("%.0f%%", pct))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Summary Table
// =============================================================================

// printSummaries renders one row per instance.
func printSummaries(w io.Writer, summaries []bench.Summary) {
	cols := []string{"instance", "cities", "optimal", "best", "mean err", "min err", "max err", "mean time"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		optimal := "-"
		if s.Optimal > 0 {
			optimal = fmt.Sprint(s.Optimal)
		}
		rows = append(rows, []string{
			s.Instance,
			fmt.Sprint(s.Cities),
			optimal,
			fmt.Sprint(s.Best.Cost),
			formatPercent(s.MeanError),
			formatPercent(s.MinError),
			formatPercent(s.MaxError),
			s.MeanElapsed.Round(time.Millisecond).String(),
		})
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	fmt.Fprintln(w, render(cols, styleTableHeader))
	for _, row := range rows {
		fmt.Fprintln(w, render(row, styleValue))
	}
}
