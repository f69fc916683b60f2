package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/focal-dev/focal/internal/catalog"
	"github.com/focal-dev/focal/internal/config"
	"github.com/focal-dev/focal/internal/nav"
	"github.com/focal-dev/focal/internal/project"
	"github.com/focal-dev/focal/internal/proftree"
	"github.com/focal-dev/focal/internal/query"
)

// inputMode tracks which text prompt, if any, currently owns the keyboard.
type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputQuery
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the focal TUI. Navigation state
// lives in the controller; the model only holds view state (selection,
// prompts, filter).
type Model struct {
	store catalog.Store
	cfg   config.Config
	log   *slog.Logger

	// Data
	profiles []*catalog.ProfileMeta
	current  *catalog.ProfileMeta
	ctrl     *nav.Controller
	table    project.Table

	// UI state
	showProfileList bool
	selectedProfile int
	selectedRow     int
	width           int
	height          int

	mode     inputMode
	input    textinput.Model
	filtered []int // visible row indexes under an active filter, nil when inactive

	// Status
	statusMsg string
	err       error
}

// NewModel creates a new TUI model backed by the given store.
func NewModel(store catalog.Store, cfg config.Config, log *slog.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 200

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return Model{
		store:           store,
		cfg:             cfg,
		log:             log,
		showProfileList: true,
		input:           ti,
		statusMsg:       "Loading profiles...",
	}
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type profilesLoadedMsg []*catalog.ProfileMeta

type profileOpenedMsg struct {
	meta *catalog.ProfileMeta
	tree *proftree.Node
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.loadProfiles()
}

func (m Model) loadProfiles() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.store.ListProfiles(catalog.ProfileFilter{Limit: 100})
		if err != nil {
			return errMsg{err}
		}
		return profilesLoadedMsg(profiles)
	}
}

func (m Model) openProfile(profileID string) tea.Cmd {
	return func() tea.Msg {
		meta, tree, err := m.store.GetProfile(profileID)
		if err != nil {
			return errMsg{err}
		}
		return profileOpenedMsg{meta: meta, tree: tree}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case profilesLoadedMsg:
		m.profiles = []*catalog.ProfileMeta(msg)
		if len(m.profiles) > 0 {
			m.statusMsg = fmt.Sprintf("%d profiles", len(m.profiles))
		} else {
			m.statusMsg = "No profiles"
		}
		return m, nil

	case profileOpenedMsg:
		projector := project.NewProjector(m.cfg.SourceRoots)
		if m.cfg.MaxDepth > 0 {
			projector.SetMaxDepth(m.cfg.MaxDepth)
		}
		m.current = msg.meta
		m.ctrl = nav.NewController(msg.tree, projector, m.log)
		m.table = m.ctrl.Current()
		m.showProfileList = false
		m.resetRowState()
		m.statusMsg = fmt.Sprintf("%s  %d nodes", msg.meta.Name, msg.meta.NodeCount)
		return m, nil

	case errMsg:
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Text prompt modes own the keyboard ──

	if m.mode != inputNone {
		switch key {
		case "esc":
			m.closePrompt()
			return m, nil
		case "enter":
			return m.submitPrompt()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if m.mode == inputFilter {
				m.applyFilter(m.input.Value())
			}
			return m, cmd
		}
	}

	// ── Global ──

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	// ── Profile list mode ──

	if m.showProfileList {
		switch key {
		case "j", "down":
			if m.selectedProfile < len(m.profiles)-1 {
				m.selectedProfile++
			}
		case "k", "up":
			if m.selectedProfile > 0 {
				m.selectedProfile--
			}
		case "enter":
			if m.selectedProfile < len(m.profiles) {
				return m, m.openProfile(m.profiles[m.selectedProfile].ProfileID)
			}
		}
		return m, nil
	}

	// ── Explorer mode ──

	switch key {
	case "j", "down":
		if m.selectedRow < m.visibleRowCount()-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g":
		m.selectedRow = 0
	case "G":
		if n := m.visibleRowCount(); n > 0 {
			m.selectedRow = n - 1
		}

	case "enter":
		m.drillIntoSelection()

	case "esc", "backspace":
		if m.ctrl.Depth() > 1 {
			m.table = m.ctrl.Back()
			m.resetRowState()
			m.statusMsg = fmt.Sprintf("back  depth %d", m.ctrl.Depth())
		} else {
			// Back at the root leaves the explorer.
			m.showProfileList = true
			m.statusMsg = fmt.Sprintf("%d profiles", len(m.profiles))
		}

	case "/":
		m.openPrompt(inputFilter, "filter rows")
	case ":":
		m.openPrompt(inputQuery, "time > 0.5  fields: "+strings.Join(query.Fields(), " "))
	}

	return m, nil
}

// ────────────────────────────────────────────────────────────
// Navigation actions
// ────────────────────────────────────────────────────────────

// drillIntoSelection navigates into the currently selected row, if it
// carries a navigation handle.
func (m *Model) drillIntoSelection() {
	row, ok := m.selectedTableRow()
	if !ok {
		return
	}
	sel := row.Handle.Selector()
	if sel == nil {
		m.statusMsg = "row is not navigable"
		return
	}

	m.table = m.ctrl.Navigate(sel)
	m.closePrompt()
	m.resetRowState()
	m.statusMsg = fmt.Sprintf("focus %s  depth %d", sel, m.ctrl.Depth())
}

// submitPrompt commits the active text prompt.
func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	switch m.mode {
	case inputFilter:
		// Filter stays applied; enter just leaves the prompt.
		m.mode = inputNone
		m.input.Blur()

	case inputQuery:
		sel, err := query.Compile(text)
		if err != nil {
			m.statusMsg = statusErrStyle.Render(fmt.Sprintf("bad query: %v", err))
			return m, nil
		}
		m.table = m.ctrl.Navigate(sel)
		m.closePrompt()
		m.resetRowState()
		m.statusMsg = fmt.Sprintf("focus %s  depth %d", sel, m.ctrl.Depth())
	}
	return m, nil
}

func (m *Model) openPrompt(mode inputMode, placeholder string) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.filtered = nil
	m.selectedRow = clamp(m.selectedRow, 0, m.visibleRowCount()-1)
}

func (m *Model) resetRowState() {
	m.selectedRow = 0
	m.filtered = nil
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	bodyHeight := m.height - 2 // header + footer

	var body string
	if m.showProfileList {
		body = renderProfileList(&m, bodyHeight)
	} else {
		body = renderTableView(&m, m.width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
