package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette — GitHub Dark aesthetic
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.
// Designed for readability in dark terminals and comfortable for long
// profiling sessions.

var (
	// Base
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")

	// Structural
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerCrumbStyle = lipgloss.NewStyle().
				Foreground(colorText)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerModeStyle = lipgloss.NewStyle().
			Foreground(colorPurple)
)

// Table rows
var (
	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	rowSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	rowDimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	rowHotStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	rowWarmStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	columnHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTextDim)
)

// Profile list
var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	listItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	listSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	listDimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Align(lipgloss.Center)
)

// Footer / prompts
var (
	footerStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorTextDim).
			Padding(0, 1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
