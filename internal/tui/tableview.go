package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/focal-dev/focal/internal/project"
	"github.com/focal-dev/focal/pkg/metric"
)

// Column widths for the fixed metric columns. The label column takes the
// remaining width.
const (
	posColWidth    = 6
	timeColWidth   = 9
	memColWidth    = 10
	dupColWidth    = 6
	metricColTotal = posColWidth + timeColWidth + 2*memColWidth + dupColWidth + 6
)

// renderTableView renders the projection table with the selection bar and
// any active fuzzy filter applied.
func renderTableView(m *Model, width, height int) string {
	total := m.visibleRowCount()
	if total == 0 {
		msg := "No rows to display."
		if m.filtered != nil {
			msg = "No rows match the filter."
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			emptyStateStyle.Render(msg))
	}

	labelWidth := width - metricColTotal
	if labelWidth < 16 {
		labelWidth = 16
	}

	var lines []string
	lines = append(lines, renderColumnHeads(m.table.Mode, labelWidth))

	visible := height - 1 // minus column heads
	if m.cfg.RowLimit > 0 && visible > m.cfg.RowLimit {
		visible = m.cfg.RowLimit
	}
	start, end := window(m.selectedRow, total, visible)

	for pos := start; pos < end; pos++ {
		row, ok := m.visibleRowAt(pos)
		if !ok {
			break
		}
		lines = append(lines, renderRow(m, row, labelWidth, pos == m.selectedRow))
	}

	return strings.Join(lines, "\n")
}

// renderColumnHeads renders the fixed column header line.
func renderColumnHeads(mode project.Mode, labelWidth int) string {
	posName := "call"
	if mode == project.ModeSourceAligned {
		posName = "line"
	}
	return columnHeadStyle.Render(fmt.Sprintf("%*s  %-*s %*s %*s %*s %*s",
		posColWidth, posName,
		labelWidth, "label",
		timeColWidth, "time",
		memColWidth, "released",
		memColWidth, "allocated",
		dupColWidth, "dups",
	))
}

// renderRow renders one table row, colored by how hot it is relative to
// the table's largest time.
func renderRow(m *Model, row project.Row, labelWidth int, selected bool) string {
	label := row.Label
	if row.Depth > 0 {
		label = strings.Repeat("  ", row.Depth) + label
	}
	if row.Truncated {
		label += " …"
	}

	timeCol := metric.FormatSeconds(row.Time)
	relCol := metric.FormatMegabytes(row.MemReleased)
	allocCol := metric.FormatMegabytes(row.MemAllocated)
	dupCol := metric.FormatCount(row.Duplications)

	// Zero-metric rows (bare source lines) render dim.
	if row.Time == 0 && row.MemAllocated == 0 && row.Duplications == 0 {
		timeCol, relCol, allocCol, dupCol = "", "", "", ""
	}

	content := fmt.Sprintf("%*d  %-*s %*s %*s %*s %*s",
		posColWidth, row.Position,
		labelWidth, truncate(label, labelWidth),
		timeColWidth, timeCol,
		memColWidth, relCol,
		memColWidth, allocCol,
		dupColWidth, dupCol,
	)

	if selected {
		return rowSelectedStyle.Render(content)
	}
	return rowStyleFor(m, row).Render(content)
}

// rowStyleFor picks a style by relative heat: the hottest rows draw the
// eye first.
func rowStyleFor(m *Model, row project.Row) lipgloss.Style {
	if row.Time == 0 {
		return rowDimStyle
	}
	hottest := 0.0
	for _, r := range m.table.Rows {
		if r.Time > hottest {
			hottest = r.Time
		}
	}
	switch {
	case hottest > 0 && row.Time >= hottest*0.75:
		return rowHotStyle
	case hottest > 0 && row.Time >= hottest*0.35:
		return rowWarmStyle
	default:
		return rowStyle
	}
}
