// Package viz renders net tables for the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridsim/internal/network"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	nullStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

const cellWidth = 14

// RenderTable formats a table with its column headers and up to maxRows
// rows. Null cells render as a dash.
func RenderTable(tab *network.Table, maxRows int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d rows)", tab.Name(), tab.Len())))
	b.WriteString("\n")

	cols := tab.Columns()
	header := []string{pad("id")}
	for _, col := range cols {
		header = append(header, pad(col))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for i, id := range tab.Index() {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(nullStyle.Render(fmt.Sprintf("... %d more rows", tab.Len()-maxRows)))
			b.WriteString("\n")
			break
		}
		fields := []string{cellStyle.Render(pad(fmt.Sprint(id)))}
		for _, col := range cols {
			if tab.IsNull(id, col) {
				fields = append(fields, nullStyle.Render(pad("-")))
				continue
			}
			v, _ := tab.At(id, col)
			fields = append(fields, cellStyle.Render(pad(fmt.Sprint(v))))
		}
		b.WriteString(strings.Join(fields, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string) string {
	if len(s) > cellWidth {
		return s[:cellWidth-1] + "…"
	}
	return s + strings.Repeat(" ", cellWidth-len(s))
}
