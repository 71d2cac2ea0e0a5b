// Package render turns a column-name list and a cell grid into aligned,
// human-readable text. It does not interpret the cells; formatting decisions
// belong to the caller.
package render

import (
	"fmt"
	"strings"
)

// Table renders names and cells as an aligned text table with an optional
// title. maxRows limits the rendered row count (0 = unlimited); omitted rows
// are summarized in a trailing line.
func Table(names []string, cells [][]string, title string, maxRows int) string {
	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}

	shown := cells
	omitted := 0
	if maxRows > 0 && len(cells) > maxRows {
		shown = cells[:maxRows]
		omitted = len(cells) - maxRows
	}

	for _, row := range shown {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}

	writeRow := func(row []string) {
		for i := range widths {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, widths[i]))
		}
		b.WriteByte('\n')
	}

	writeRow(names)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteByte('\n')

	for _, row := range shown {
		writeRow(row)
	}

	if omitted > 0 {
		fmt.Fprintf(&b, "... (%d more rows)\n", omitted)
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
