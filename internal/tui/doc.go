// Package tui implements the focal terminal user interface.
//
// This is an interactive explorer for profiling trees built with
// Charmbracelet's BubbleTea, Bubbles, and Lipgloss libraries. The TUI is
// a thin adapter over the navigation controller: every keypress maps to a
// Navigate or Back command (or pure view state), and all displayed data
// comes from the controller's projected tables.
//
// Component architecture:
//
//	model.go       — root model, message routing, Init/Update
//	theme.go       — centralized color + style definitions
//	header.go      — top bar with breadcrumb and projection mode
//	tableview.go   — projection table with selection and fuzzy filter
//	profilelist.go — profile selector (initial screen)
//	footer.go      — status line + keyboard hints
//	helpers.go     — truncation, windowing, etc.
package tui
