package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

// MinTerminalWidth is the narrowest terminal the full layout supports.
const MinTerminalWidth = 80

// MinTerminalHeight is the shortest terminal the full layout supports.
const MinTerminalHeight = 20

// DefaultSidebarWidth is the fixed column width of the statistics sidebar.
const DefaultSidebarWidth = 28

// TitleBarHeight is the number of rows used by the title bar.
const TitleBarHeight = 1

// StatusBarHeight is the number of rows used by the status bar.
const StatusBarHeight = 1

// BorderWidth is the width of the divider between sidebar and main panel.
const BorderWidth = 1

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// PanelDimensions is a panel size in terminal cells.
type PanelDimensions struct {
	Width  int
	Height int
}

// Layout computes the size of every dashboard panel. Call Resize on every
// tea.WindowSizeMsg.
//
//	+---------------------------------------------+
//	| Title Bar                                   |
//	+--------------+------------------------------+
//	| Statistics   | Task list or Gantt chart     |
//	| (fixed)      |                              |
//	+--------------+------------------------------+
//	| Status Bar                                  |
//	+---------------------------------------------+
type Layout struct {
	termWidth    int
	termHeight   int
	sidebarWidth int

	TitleBar  PanelDimensions
	Sidebar   PanelDimensions
	Main      PanelDimensions
	StatusBar PanelDimensions
}

// NewLayout returns a Layout with DefaultSidebarWidth. Panel sizes stay zero
// until the first Resize.
func NewLayout() Layout {
	return Layout{sidebarWidth: DefaultSidebarWidth}
}

// Resize recalculates panel sizes for the terminal and reports whether the
// terminal is large enough for the full layout. When it is not, the raw
// terminal size is still recorded.
func (l *Layout) Resize(width, height int) bool {
	l.termWidth = width
	l.termHeight = height

	if l.IsTooSmall() {
		return false
	}

	contentHeight := max(l.termHeight-TitleBarHeight-StatusBarHeight, 1)
	mainWidth := max(l.termWidth-l.sidebarWidth-BorderWidth, 1)

	l.TitleBar = PanelDimensions{Width: l.termWidth, Height: TitleBarHeight}
	l.Sidebar = PanelDimensions{Width: l.sidebarWidth, Height: contentHeight}
	l.Main = PanelDimensions{Width: mainWidth, Height: contentHeight}
	l.StatusBar = PanelDimensions{Width: l.termWidth, Height: StatusBarHeight}
	return true
}

// IsTooSmall reports whether the last recorded size is below the minimum.
func (l Layout) IsTooSmall() bool {
	return l.termWidth < MinTerminalWidth || l.termHeight < MinTerminalHeight
}

// TerminalSize returns the last recorded terminal size.
func (l Layout) TerminalSize() (int, int) {
	return l.termWidth, l.termHeight
}

// Render assembles a frame from pre-rendered panel contents, sizing each to
// its computed dimensions.
func (l Layout) Render(titleBar, sidebar, main, statusBar string) string {
	titleView := lipgloss.NewStyle().
		Width(l.TitleBar.Width).
		Height(l.TitleBar.Height).
		MaxHeight(l.TitleBar.Height).
		Render(titleBar)

	sidebarView := lipgloss.NewStyle().
		Width(l.Sidebar.Width).
		Height(l.Sidebar.Height).
		MaxHeight(l.Sidebar.Height).
		Render(sidebar)

	mainView := lipgloss.NewStyle().
		Width(l.Main.Width).
		Height(l.Main.Height).
		MaxHeight(l.Main.Height).
		Render(main)

	statusView := lipgloss.NewStyle().
		Width(l.StatusBar.Width).
		Height(l.StatusBar.Height).
		MaxHeight(l.StatusBar.Height).
		Render(statusBar)

	divider := lipgloss.NewStyle().
		Width(BorderWidth).
		Height(l.Sidebar.Height).
		Foreground(ColorBorder).
		Render(strings.TrimSuffix(strings.Repeat("│\n", l.Sidebar.Height), "\n"))

	middle := lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, divider, mainView)
	return lipgloss.JoinVertical(lipgloss.Left, titleView, middle, statusView)
}

// RenderTooSmall returns a resize hint, centered when the terminal size is
// known.
func (l Layout) RenderTooSmall(theme Theme) string {
	msg := "Terminal too small.\nPlease resize to at least 80×20."
	styled := theme.ErrorText.Render(msg)
	if l.termWidth <= 0 || l.termHeight <= 0 {
		return styled
	}
	return lipgloss.Place(l.termWidth, l.termHeight, lipgloss.Center, lipgloss.Center, styled)
}
