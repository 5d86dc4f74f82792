// =============================================================================
// Packiyo PO Converter - Location Picker
// =============================================================================
//
// A small bubbletea program that lets the user choose which Shopify
// locations to pull inventory from. It is only started by the convert
// command when no --location flag was given and the terminal is interactive.
//
// KEYS:
//   up/k, down/j   move
//   space          toggle the current location
//   a              select all / select none
//   enter          confirm (needs at least one selection)
//   esc, q, ctrl+c cancel
//
// =============================================================================

package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits the picker without
// confirming a selection.
var ErrCancelled = errors.New("location selection cancelled")

// =============================================================================
// KEY BINDINGS
// =============================================================================

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Confirm, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all/none"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB347"))
)

// =============================================================================
// MODEL
// =============================================================================

// PickerModel is the bubbletea model behind PickLocations.
type PickerModel struct {
	locations []string
	selected  map[int]bool
	cursor    int
	warning   string
	help      help.Model

	confirmed bool
	cancelled bool
}

// NewPickerModel creates a picker over locations with nothing selected.
func NewPickerModel(locations []string) PickerModel {
	return PickerModel{
		locations: locations,
		selected:  make(map[int]bool),
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.warning = ""

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.locations)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.Toggle):
		if len(m.locations) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}

	case key.Matches(keyMsg, keys.ToggleAll):
		all := len(m.Selected()) < len(m.locations)
		for i := range m.locations {
			m.selected[i] = all
		}

	case key.Matches(keyMsg, keys.Confirm):
		if len(m.Selected()) == 0 {
			m.warning = "Select at least one Location to Pull From."
			return m, nil
		}
		m.confirmed = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Location(s) to Pull From"))
	b.WriteString("\n\n")

	for i, loc := range m.locations {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		line := "[ ] " + loc
		if m.selected[i] {
			line = selectedStyle.Render("[x] " + loc)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(warnStyle.Render(m.warning) + "\n")
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("%d of %d selected", len(m.Selected()), len(m.locations))))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen locations in display order.
func (m PickerModel) Selected() []string {
	var out []string
	for i, loc := range m.locations {
		if m.selected[i] {
			out = append(out, loc)
		}
	}
	return out
}

// Confirmed reports whether the user pressed enter with a selection.
func (m PickerModel) Confirmed() bool {
	return m.confirmed
}

// =============================================================================
// PROGRAM
// =============================================================================

// PickLocations runs the picker on the given terminal streams.
//
// RETURNS:
//   - The selected locations, in the order they were offered.
//   - ErrCancelled if the user quit, or the program's own error.
func PickLocations(locations []string, in io.Reader, out io.Writer) ([]string, error) {
	p := tea.NewProgram(
		NewPickerModel(locations),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("location picker failed: %w", err)
	}

	m, ok := final.(PickerModel)
	if !ok || !m.Confirmed() {
		return nil, ErrCancelled
	}
	return m.Selected(), nil
}
