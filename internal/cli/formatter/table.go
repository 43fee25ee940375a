package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = 2

// RenderTable lays out the project, resource and assignment listings: a
// header row, a dim rule, then one line per row. Widths come from
// lipgloss.Width so status pills and band-coloured cells keep columns aligned.
// Short rows are padded with empty cells; extra cells are dropped.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder

	header := make([]string, len(headers))
	rule := make([]string, len(headers))
	for i, h := range headers {
		header[i] = StyleHeader.Render(h)
		rule[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeTableRow(&b, widths, header)
	writeTableRow(&b, widths, rule)
	for _, row := range rows {
		writeTableRow(&b, widths, row)
	}

	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// writeTableRow pads every cell but the last to its column width.
func writeTableRow(b *strings.Builder, widths []int, cells []string) {
	last := len(widths) - 1
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < last {
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			b.WriteString(strings.Repeat(" ", pad+tableGap))
		}
	}
	b.WriteString("\n")
}
