package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/chart"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// Dashboard palette. Each colour adapts to light and dark terminals.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"} // titles, keys
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"} // filled progress
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"} // secondary text
	ColorSubtle    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"} // empty bar cells
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"} // status bar background

	colorText     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	colorSoftText = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	colorOnTitle  = lipgloss.Color("#FFFFFF")
)

// Theme holds the styles of every dashboard region. Sizes are left to the
// layout, which applies Width and Height at render time.
type Theme struct {
	TitleBar, TitleText, TitleVersion, TitleHint lipgloss.Style

	SidebarContainer, SidebarTitle, SidebarItem lipgloss.Style

	PanelHeader, TaskName, TaskDates, EmptyText lipgloss.Style

	StatusBar, StatusKey, StatusValue, StatusSeparator lipgloss.Style

	ProgressFilled, ProgressEmpty, ProgressLabel, ProgressPercent lipgloss.Style

	ToastInfo, ToastSuccess, ToastWarning, ToastError lipgloss.Style

	HelpKey, HelpDesc, ErrorText lipgloss.Style
}

func fg(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func boldFg(c lipgloss.TerminalColor) lipgloss.Style { return fg(c).Bold(true) }

// DefaultTheme builds the dashboard theme from the palette.
func DefaultTheme() Theme {
	return Theme{
		TitleBar:     boldFg(colorOnTitle).Background(ColorPrimary).Padding(0, 1),
		TitleText:    boldFg(colorOnTitle),
		TitleVersion: fg(lipgloss.AdaptiveColor{Light: "#E0DFFF", Dark: "#C4C2FF"}),
		TitleHint:    fg(lipgloss.AdaptiveColor{Light: "#C7C5FF", Dark: "#A8A5FF"}),

		SidebarContainer: lipgloss.NewStyle().Padding(0, 1),
		SidebarTitle:     boldFg(ColorPrimary),
		SidebarItem:      fg(ColorMuted),

		PanelHeader: boldFg(ColorPrimary),
		TaskName:    fg(colorText),
		TaskDates:   fg(ColorMuted),
		EmptyText:   fg(ColorMuted).Italic(true),

		StatusBar:       fg(ColorMuted).Background(ColorHighlight).Padding(0, 1),
		StatusKey:       boldFg(ColorPrimary),
		StatusValue:     fg(colorSoftText),
		StatusSeparator: fg(ColorSubtle),

		ProgressFilled:  fg(ColorAccent),
		ProgressEmpty:   fg(ColorSubtle),
		ProgressLabel:   fg(ColorMuted),
		ProgressPercent: boldFg(ColorAccent),

		ToastInfo:    fg(ColorInfo),
		ToastSuccess: fg(ColorSuccess),
		ToastWarning: boldFg(ColorWarning),
		ToastError:   boldFg(ColorError),

		HelpKey:   boldFg(ColorPrimary),
		HelpDesc:  fg(ColorMuted),
		ErrorText: boldFg(ColorError),
	}
}

var statusGlyphs = map[task.TaskStatus]string{
	task.StatusCompleted:  "✓",
	task.StatusInProgress: "●",
	task.StatusOnHold:     "◌",
	task.StatusCancelled:  "✗",
}

// StatusIndicator returns the status glyph in the status colour. Unknown and
// not-started statuses share the hollow circle.
func (t Theme) StatusIndicator(status task.TaskStatus) string {
	glyph, ok := statusGlyphs[status]
	if !ok {
		glyph = "○"
	}
	return fg(chart.StatusColor(status)).Render(glyph)
}

// ToastStyle returns the style for a notification severity.
func (t Theme) ToastStyle(sev notify.Severity) lipgloss.Style {
	switch sev {
	case notify.SeveritySuccess:
		return t.ToastSuccess
	case notify.SeverityWarning:
		return t.ToastWarning
	case notify.SeverityError:
		return t.ToastError
	default:
		return t.ToastInfo
	}
}

// ProgressBar draws a bar width cells wide with the filled share (clamped
// to [0, 1]) in solid blocks.
func (t Theme) ProgressBar(filled float64, width int) string {
	if width <= 0 {
		return ""
	}
	n := int(min(max(filled, 0), 1) * float64(width))
	return t.ProgressFilled.Render(strings.Repeat("█", n)) +
		t.ProgressEmpty.Render(strings.Repeat("░", width-n))
}
