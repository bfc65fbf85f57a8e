package markdown

import (
	"strings"

	"github.com/tsawler/pagedown/model"
)

// RenderTable renders a table as a pipe-delimited Markdown grid: header
// row, separator row, then data rows. Cell text is whitespace-normalized
// and pipes are escaped; rows shorter than the column count are padded
// with empty cells. An empty table renders as the empty string.
func RenderTable(table model.Table) string {
	if table.RowCount() == 0 {
		return ""
	}

	cols := table.ColCount()
	if cols == 0 {
		return ""
	}

	var sb strings.Builder
	for i, row := range table.Rows {
		sb.WriteString(renderRow(row, cols))
		sb.WriteString("\n")
		if i == 0 {
			sb.WriteString(separatorRow(cols))
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderRow(row []string, cols int) string {
	cells := make([]string, cols)
	for i := 0; i < cols; i++ {
		if i < len(row) {
			cells[i] = escapeCell(row[i])
		}
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func separatorRow(cols int) string {
	parts := make([]string, cols)
	for i := range parts {
		parts[i] = "---"
	}
	return "| " + strings.Join(parts, " | ") + " |"
}

// escapeCell collapses internal whitespace (including newlines) and
// escapes pipe characters so they cannot break the grid.
func escapeCell(cell string) string {
	return strings.ReplaceAll(normalizeSpace(cell), "|", `\|`)
}
