package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderFooter renders the bottom status line: an active prompt, or the
// status message plus keyboard hints.
func renderFooter(m *Model) string {
	if m.mode != inputNone {
		label := "/"
		if m.mode == inputQuery {
			label = ":"
		}
		return footerStyle.Width(m.width).Render(
			promptStyle.Render(label) + m.input.View())
	}

	var hints []string
	if m.showProfileList {
		hints = []string{
			footerKeyStyle.Render("j/k") + " move",
			footerKeyStyle.Render("enter") + " open",
			footerKeyStyle.Render("q") + " quit",
		}
	} else {
		hints = []string{
			footerKeyStyle.Render("j/k") + " move",
			footerKeyStyle.Render("enter") + " drill in",
			footerKeyStyle.Render("esc") + " back",
			footerKeyStyle.Render("/") + " filter",
			footerKeyStyle.Render(":") + " query",
			footerKeyStyle.Render("q") + " quit",
		}
	}

	left := m.statusMsg
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return footerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
