package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/viktori/matteray/pkg/matrix"
)

var (
	tableHeaderStyle    = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle      = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1).Align(lipgloss.Right)
	tableHighlightStyle = tableCellStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(colorYellow)
)

// formatValue prints v with the fewest digits that round-trip.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// matrixTable renders m as a bordered table with row and column indices.
// The cell at highlight, if any, is drawn inverted.
func matrixTable(m *matrix.Matrix[float64], highlight *matrix.Cell) string {
	if m.IsEmpty() {
		return StyleDim.Render("(empty)")
	}

	headers := make([]string, m.Columns()+1)
	for c := range m.Columns() {
		headers[c+1] = strconv.Itoa(c)
	}

	rows := make([][]string, m.Rows())
	for r := range m.Rows() {
		row := make([]string, m.Columns()+1)
		row[0] = strconv.Itoa(r)
		for c := range m.Columns() {
			row[c+1] = formatValue(m.At(r, c))
		}
		rows[r] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow, col == 0:
				return tableHeaderStyle
			case highlight != nil && row == highlight.Row && col == highlight.Column+1:
				return tableHighlightStyle
			}
			return tableCellStyle
		})

	return t.Render()
}
