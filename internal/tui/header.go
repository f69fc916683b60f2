package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: brand, breadcrumb of the navigation
// stack, and the projection mode of the current table.
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("focal")

	var middle string
	if m.showProfileList {
		middle = headerSepStyle.Render("select a profile")
	} else {
		sep := headerSepStyle.Render(" › ")
		crumbs := m.ctrl.Breadcrumb()

		// Keep the tail of deep breadcrumbs.
		maxCrumbs := 5
		if len(crumbs) > maxCrumbs {
			crumbs = append([]string{"…"}, crumbs[len(crumbs)-maxCrumbs+1:]...)
		}
		parts := make([]string, len(crumbs))
		for i, c := range crumbs {
			parts[i] = headerCrumbStyle.Render(truncate(c, 24))
		}
		middle = strings.Join(parts, sep)
	}

	mode := ""
	if !m.showProfileList {
		mode = headerModeStyle.Render(m.table.Mode.String())
	}

	left := brand + "  " + middle
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mode) - 2
	if gap < 1 {
		gap = 1
	}

	return headerBarStyle.Width(m.width).Render(
		left + strings.Repeat(" ", gap) + mode)
}
