package render

import "strings"

// Table is a bordered table rendered to a string.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow adds a row to the table. Missing cells are left blank.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.Headers) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], StringWidth(cell))
			}
		}
	}
	return widths
}

// String renders the table with box drawing borders.
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.columnWidths()

	border := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return left + strings.Join(parts, mid) + right
	}
	row := func(cells []string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + padRight(TruncateToWidth(cell, w), w) + " "
		}
		return "│" + strings.Join(parts, "│") + "│"
	}

	lines := []string{border("┌", "┬", "┐"), row(t.Headers), border("├", "┼", "┤")}
	for _, r := range t.Rows {
		lines = append(lines, row(r))
	}
	lines = append(lines, border("└", "┴", "┘"))
	return strings.Join(lines, "\n")
}
