package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// SidebarModel renders the statistics panel: overall progress, the
// completed and in-progress shares, and a per-status breakdown of the
// filtered tasks. The parent App calls SetStats on every snapshot.
type SidebarModel struct {
	theme  Theme
	width  int
	height int

	stats    task.Statistics
	byStatus map[task.TaskStatus]int
	total    int // unfiltered task count
	hasData  bool

	bar progress.Model
}

// NewSidebarModel creates an empty sidebar.
func NewSidebarModel(theme Theme) SidebarModel {
	return SidebarModel{
		theme: theme,
		bar: progress.New(
			progress.WithSolidFill(ColorAccent.Dark),
			progress.WithoutPercentage(),
		),
	}
}

// SetDimensions updates the panel size.
func (m *SidebarModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = m.barWidth()
}

// SetStats records the statistics and status breakdown of the filtered
// tasks. total is the size of the unfiltered list.
func (m *SidebarModel) SetStats(stats task.Statistics, filtered []task.Task, total int, hasData bool) {
	m.stats = stats
	m.byStatus = task.StatusCounts(filtered)
	m.total = total
	m.hasData = hasData
}

// barWidth leaves room for the container padding and a "100%" suffix.
func (m SidebarModel) barWidth() int {
	return max(m.width-2-5, 4)
}

// View renders the sidebar content; the layout sizes it.
func (m SidebarModel) View() string {
	if m.width == 0 && m.height == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.theme.SidebarTitle.Render("STATISTICS"))
	sb.WriteString("\n")

	if !m.hasData {
		sb.WriteString(m.theme.SidebarItem.Render("No data loaded"))
		return m.theme.SidebarContainer.Render(sb.String())
	}

	shown := fmt.Sprintf("%d of %d tasks", m.stats.TotalTasks, m.total)
	sb.WriteString(m.theme.SidebarItem.Render(shown))
	sb.WriteString("\n\n")

	sb.WriteString(m.percentRow("Overall progress", float64(m.stats.OverallProgress)))
	sb.WriteString(m.percentRow(fmt.Sprintf("Completed (%d)", m.stats.CompletedTasks), m.stats.CompletedPercent))
	sb.WriteString(m.percentRow(fmt.Sprintf("In progress (%d)", m.stats.InProgressTasks), m.stats.InProgressPercent))

	sb.WriteString(m.theme.SidebarTitle.Render("BY STATUS"))
	sb.WriteString("\n")
	labelWidth := max(m.width-8, 1)
	known := 0
	for _, s := range task.ValidStatuses() {
		known += m.byStatus[s]
		sb.WriteString(m.statusRow(m.theme.StatusIndicator(s), s.Label(), labelWidth, m.byStatus[s]))
	}
	if other := m.stats.TotalTasks - known; other > 0 {
		sb.WriteString(m.statusRow(m.theme.StatusIndicator(""), task.TaskStatus("").Label(), labelWidth, other))
	}

	return m.theme.SidebarContainer.Render(strings.TrimRight(sb.String(), "\n"))
}

// percentRow renders a label line followed by a bar and its percentage.
func (m SidebarModel) percentRow(label string, pct float64) string {
	var sb strings.Builder
	sb.WriteString(m.theme.ProgressLabel.Render(label))
	sb.WriteString("\n")
	sb.WriteString(m.bar.ViewAs(pct / 100))
	sb.WriteString(m.theme.ProgressPercent.Render(fmt.Sprintf(" %3.0f%%", pct)))
	sb.WriteString("\n\n")
	return sb.String()
}

// statusRow renders "● Label      12".
func (m SidebarModel) statusRow(indicator, label string, labelWidth, count int) string {
	return fmt.Sprintf("%s %-*s %3d\n", indicator, labelWidth, truncateName(label, labelWidth), count)
}

// truncateName shortens name to maxWidth columns, ending with "…" when cut.
func truncateName(name string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if len([]rune(name)) <= maxWidth {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxWidth-1]) + "…"
}
