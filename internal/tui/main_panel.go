package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/chart"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// chartChrome is the number of columns a chart row uses besides the label
// and the bar: two separators and the " 100% 99d" suffix.
const chartChrome = 12

// statusColumn is the padded width of the status label in list mode.
const statusColumn = 12

// progressCells is the width of the per-task bar in list mode.
const progressCells = 8

// MainPanelModel shows the filtered tasks either as a list or as a text
// Gantt chart inside a scrollable viewport.
type MainPanelModel struct {
	theme  Theme
	keyMap KeyMap
	width  int
	height int

	view     board.ViewMode
	tasks    []task.Task
	total    int
	loading  bool
	hasData  bool
	filtered bool
	now      func() time.Time

	viewport viewport.Model
}

// NewMainPanelModel creates an empty panel in list mode.
func NewMainPanelModel(theme Theme, keyMap KeyMap) MainPanelModel {
	return MainPanelModel{
		theme:    theme,
		keyMap:   keyMap,
		view:     board.ViewBasic,
		now:      time.Now,
		viewport: viewport.New(0, 0),
	}
}

// SetDimensions resizes the panel and re-renders its content.
func (mp *MainPanelModel) SetDimensions(width, height int) {
	mp.width = width
	mp.height = height
	mp.viewport.Width = width
	mp.viewport.Height = max(height-1, 0)
	mp.rebuild()
}

// SetSnapshot replaces the displayed tasks and view mode. The scroll
// position resets when the view mode changes.
func (mp *MainPanelModel) SetSnapshot(snap board.Snapshot) {
	viewChanged := mp.view != snap.View
	mp.view = snap.View
	mp.tasks = snap.Filtered
	mp.total = len(snap.Tasks)
	mp.loading = snap.Loading
	mp.hasData = snap.HasData()
	mp.filtered = !snap.Criteria.IsEmpty()
	mp.rebuild()
	if viewChanged {
		mp.viewport.GotoTop()
	}
}

// Update handles scrolling keys.
func (mp MainPanelModel) Update(msg tea.Msg) (MainPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return mp, nil
	}
	switch {
	case key.Matches(keyMsg, mp.keyMap.Up):
		mp.viewport.ScrollUp(1)
	case key.Matches(keyMsg, mp.keyMap.Down):
		mp.viewport.ScrollDown(1)
	case key.Matches(keyMsg, mp.keyMap.PageUp):
		mp.viewport.PageUp()
	case key.Matches(keyMsg, mp.keyMap.PageDown):
		mp.viewport.PageDown()
	case key.Matches(keyMsg, mp.keyMap.Home):
		mp.viewport.GotoTop()
	case key.Matches(keyMsg, mp.keyMap.End):
		mp.viewport.GotoBottom()
	}
	return mp, nil
}

// View renders the header line and the viewport.
func (mp MainPanelModel) View() string {
	if mp.width == 0 && mp.height == 0 {
		return ""
	}
	header := mp.theme.PanelHeader.Render(fmt.Sprintf("Tasks · %s", mp.view.Label()))
	if mp.loading {
		header += mp.theme.TaskDates.Render("  loading…")
	}
	return header + "\n" + mp.viewport.View()
}

// Content returns the unscrolled panel body.
func (mp MainPanelModel) Content() string {
	switch {
	case !mp.hasData && mp.loading:
		return mp.theme.EmptyText.Render("Loading project data…")
	case !mp.hasData:
		return mp.theme.EmptyText.Render("No data loaded. Press r to retry.")
	case len(mp.tasks) == 0 && mp.filtered:
		return mp.theme.EmptyText.Render(fmt.Sprintf("No tasks match the current filters (%d hidden). Press x to clear.", mp.total))
	case len(mp.tasks) == 0:
		return mp.theme.EmptyText.Render("No tasks to display.")
	}

	if mp.view == board.ViewD3 {
		return mp.chartContent()
	}
	return mp.listContent()
}

func (mp *MainPanelModel) rebuild() {
	mp.viewport.SetContent(mp.Content())
}

// listContent renders one line per task:
//
//	✓ Design API             Completed    ████████ 100%  2024-01-01 → 2024-01-10 (10d)
func (mp MainPanelModel) listContent() string {
	nameWidth := max(min(mp.width/3, 40), 8)

	var sb strings.Builder
	for _, t := range mp.tasks {
		name := fmt.Sprintf("%-*s", nameWidth, truncateName(t.Name, nameWidth))

		progress := strings.Repeat(" ", progressCells+1) + "   -"
		if t.Progress != nil {
			progress = mp.theme.ProgressBar(float64(*t.Progress)/100, progressCells) + fmt.Sprintf(" %3d%%", *t.Progress)
		}

		dates := chart.FormatDate(t.StartDate, "") + " → " + chart.FormatDate(t.EndDate, "")
		if days, ok := chart.DurationDays(t); ok {
			dates += fmt.Sprintf(" (%dd)", days)
		}

		sb.WriteString(mp.theme.StatusIndicator(t.Status))
		sb.WriteString(" ")
		sb.WriteString(mp.theme.TaskName.Render(name))
		sb.WriteString(" ")
		sb.WriteString(chart.StatusBadge(t.Status))
		sb.WriteString(strings.Repeat(" ", max(statusColumn-len(t.Status.Label()), 0)))
		sb.WriteString(" ")
		sb.WriteString(progress)
		sb.WriteString("  ")
		sb.WriteString(mp.theme.TaskDates.Render(dates))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// chartContent renders the Gantt chart sized to the panel, followed by the
// status legend.
func (mp MainPanelModel) chartContent() string {
	labelWidth := max(min(mp.width/4, 28), 6)
	width := max(mp.width-labelWidth-chartChrome, 10)
	out := chart.Render(mp.tasks, chart.Options{
		Width:      width,
		LabelWidth: labelWidth,
		Today:      mp.now(),
	})
	return out + "\n\n" + chart.Legend()
}
