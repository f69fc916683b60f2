package tui

import (
	"github.com/sahilm/fuzzy"

	"github.com/focal-dev/focal/internal/project"
)

// ────────────────────────────────────────────────────────────
// Row filtering
// ────────────────────────────────────────────────────────────

// applyFilter fuzzy-matches the filter text against row labels and
// records the visible row indexes. An empty filter shows everything.
func (m *Model) applyFilter(text string) {
	if text == "" {
		m.filtered = nil
		m.selectedRow = 0
		return
	}

	labels := make([]string, len(m.table.Rows))
	for i, r := range m.table.Rows {
		labels[i] = r.Label
	}

	matches := fuzzy.Find(text, labels)
	indexes := make([]int, len(matches))
	for i, match := range matches {
		indexes[i] = match.Index
	}
	m.filtered = indexes
	m.selectedRow = 0
}

// visibleRowCount returns the number of rows under the active filter.
func (m *Model) visibleRowCount() int {
	if m.filtered != nil {
		return len(m.filtered)
	}
	return len(m.table.Rows)
}

// visibleRowAt maps a display position to the underlying table row.
func (m *Model) visibleRowAt(pos int) (project.Row, bool) {
	if m.filtered != nil {
		if pos < 0 || pos >= len(m.filtered) {
			return project.Row{}, false
		}
		return m.table.Rows[m.filtered[pos]], true
	}
	if pos < 0 || pos >= len(m.table.Rows) {
		return project.Row{}, false
	}
	return m.table.Rows[pos], true
}

// selectedTableRow returns the row under the cursor.
func (m *Model) selectedTableRow() (project.Row, bool) {
	return m.visibleRowAt(m.selectedRow)
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// window computes the visible [start, end) range for a scrolling list of
// total items with the cursor at selected.
func window(selected, total, visible int) (start, end int) {
	if visible < 1 {
		visible = 1
	}
	start = 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end = start + visible
	if end > total {
		end = total
	}
	return start, end
}
