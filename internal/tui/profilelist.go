package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/focal-dev/focal/pkg/metric"
)

// renderProfileList renders the profile selection screen.
func renderProfileList(m *Model, height int) string {
	if len(m.profiles) == 0 {
		empty := emptyStateStyle.Render(
			"No profiles found.\n\n" +
				"Import a capture with:  focal import <dump.json>\n" +
				"then it will appear here.")
		return lipgloss.Place(
			m.width,
			height,
			lipgloss.Center,
			lipgloss.Center,
			empty,
		)
	}

	title := listTitleStyle.Render("Profiles")
	count := listDimStyle.Render(fmt.Sprintf("  %d total", len(m.profiles)))

	var lines []string
	lines = append(lines, title+count)
	lines = append(lines, "")

	maxVisible := height - 3
	if maxVisible < 5 {
		maxVisible = 5
	}
	start, end := window(m.selectedProfile, len(m.profiles), maxVisible)

	for i := start; i < end; i++ {
		p := m.profiles[i]

		when := time.Unix(0, p.ImportedAt).Format("2006-01-02 15:04")
		content := fmt.Sprintf("%-28s %8s  %6d nodes  %s  %s",
			truncate(p.Name, 28),
			metric.FormatSeconds(p.TotalTime),
			p.NodeCount,
			listDimStyle.Render(p.ProfileID),
			listDimStyle.Render(when),
		)

		if i == m.selectedProfile {
			lines = append(lines, listSelectedStyle.Width(m.width-4).Render(content))
		} else {
			lines = append(lines, listItemStyle.Width(m.width-4).Render(content))
		}
	}

	return strings.Join(lines, "\n")
}
