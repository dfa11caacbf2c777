package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap holds the dashboard bindings. Board keys act while the filter form
// is closed; scrolling keys are forwarded to the main panel viewport.
type KeyMap struct {
	Quit, Help key.Binding

	ToggleView, Filter, ClearFilters, Reload key.Binding

	Up, Down, PageUp, PageDown, Home, End key.Binding
}

// bind builds a binding whose help label is the first element of keys
// unless label is set.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: bind("q/ctrl+c", "quit", "q", "ctrl+c"),
		Help: bind("", "help", "?"),

		ToggleView:   bind("", "list/chart view", "v"),
		Filter:       bind("", "edit filters", "/"),
		ClearFilters: bind("", "clear filters", "x"),
		Reload:       bind("", "reload", "r"),

		Up:       bind("↑/k", "scroll up", "up", "k"),
		Down:     bind("↓/j", "scroll down", "down", "j"),
		PageUp:   bind("", "page up", "pgup"),
		PageDown: bind("pgdn", "page down", "pgdown"),
		Home:     bind("home/g", "go to top", "home", "g"),
		End:      bind("end/G", "go to bottom", "end", "G"),
	}
}

func (k KeyMap) boardKeys() []key.Binding {
	return []key.Binding{k.ToggleView, k.Filter, k.ClearFilters, k.Reload}
}

func (k KeyMap) scrollKeys() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End}
}

// ShortHelp implements help.KeyMap for the one-line hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.boardKeys(), k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.boardKeys(), k.scrollKeys(), {k.Help, k.Quit}}
}

// HelpOverlay displays a centered keybinding reference over the dashboard.
type HelpOverlay struct {
	theme   Theme
	keyMap  KeyMap
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a hidden HelpOverlay.
func NewHelpOverlay(theme Theme, keyMap KeyMap) HelpOverlay {
	return HelpOverlay{theme: theme, keyMap: keyMap}
}

// SetDimensions updates the terminal size used to center the overlay.
func (h *HelpOverlay) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Toggle flips the overlay visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the overlay is shown.
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update closes the overlay on '?' or Esc and swallows every other key.
func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, h.keyMap.Help):
			h.visible = false
		case keyMsg.Type == tea.KeyEsc:
			h.visible = false
		}
	}
	return h, nil
}

// View renders the overlay, or "" when hidden or unsized.
func (h HelpOverlay) View() string {
	if !h.visible || h.width == 0 || h.height == 0 {
		return ""
	}

	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Render(h.buildContent())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, boxed)
}

func (h HelpOverlay) buildContent() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	heading := lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	groups := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Board", h.keyMap.boardKeys()},
		{"Scrolling", h.keyMap.scrollKeys()},
		{"General", []key.Binding{h.keyMap.Help, h.keyMap.Quit}},
	}

	var sb strings.Builder
	sb.WriteString(title.Render("Gantry: Keyboard Shortcuts") + "\n\n")
	for _, g := range groups {
		sb.WriteString(heading.Render(g.name) + "\n")
		for _, b := range g.bindings {
			help := b.Help()
			fmt.Fprintf(&sb, "  %s  %s\n", h.theme.HelpKey.Render(help.Key), h.theme.HelpDesc.Render(help.Desc))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.NewStyle().Italic(true).Foreground(ColorMuted).Render("Press ? or Esc to close"))
	return sb.String()
}
