package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// StatusBarModel renders the bottom line of the dashboard: view mode, active
// filters, the latest toast and when the data was last loaded.
type StatusBarModel struct {
	theme Theme
	width int

	view     board.ViewMode
	criteria task.FilterCriteria
	toast    *notify.Notification
	gen      uint64
	loadedAt time.Time
	now      time.Time
	clock    func() time.Time
}

// NewStatusBarModel creates a status bar in list mode with no filters.
func NewStatusBarModel(theme Theme) StatusBarModel {
	return StatusBarModel{theme: theme, view: board.ViewBasic, now: time.Now(), clock: time.Now}
}

// SetWidth updates the bar width.
func (sb *StatusBarModel) SetWidth(width int) {
	sb.width = width
}

// Toast returns the notification currently shown, if any.
func (sb StatusBarModel) Toast() (notify.Notification, bool) {
	if sb.toast == nil {
		return notify.Notification{}, false
	}
	return *sb.toast, true
}

// Update handles:
//   - SnapshotMsg      view mode, criteria, load time
//   - ToastMsg         shows the notification
//   - ToastExpiredMsg  hides it if it is still the one shown
//   - TickMsg          refreshes the relative load time
func (sb StatusBarModel) Update(msg any) StatusBarModel {
	switch m := msg.(type) {
	case SnapshotMsg:
		sb.view = m.Snapshot.View
		sb.criteria = m.Snapshot.Criteria
		if m.Snapshot.HasData() && m.Snapshot.Generation != sb.gen {
			sb.gen = m.Snapshot.Generation
			sb.loadedAt = sb.clock()
			sb.now = sb.loadedAt
		}

	case ToastMsg:
		n := m.Notification
		sb.toast = &n

	case ToastExpiredMsg:
		if sb.toast != nil && sb.toast.ID == m.ID {
			sb.toast = nil
		}

	case TickMsg:
		sb.now = m.Time
	}
	return sb
}

// View renders the bar. Optional segments are dropped from the right when
// the width is too small; the help hint always stays.
//
//	[List] | Filters status=Completed | ✗ Failed to load… | loaded 2 minutes ago | ? help
func (sb StatusBarModel) View() string {
	if sb.width <= 0 {
		return ""
	}

	sep := sb.theme.StatusSeparator.Render(" | ")
	helpStr := sep + sb.theme.HelpKey.Render("?") + " " + sb.theme.HelpDesc.Render("help")

	type segment struct {
		text     string
		optional bool
	}
	segments := []segment{
		{text: sb.theme.StatusKey.Render("[" + sb.view.Label() + "]")},
		{text: sep + sb.theme.StatusKey.Render("Filters") + " " + sb.theme.StatusValue.Render(FilterSummary(sb.criteria)), optional: true},
	}
	if sb.toast != nil {
		segments = append(segments, segment{text: sep + sb.toastSegment()})
	}
	if !sb.loadedAt.IsZero() {
		segments = append(segments, segment{
			text:     sep + sb.theme.StatusValue.Render("loaded "+humanize.RelTime(sb.loadedAt, sb.now, "ago", "from now")),
			optional: true,
		})
	}

	// StatusBar has Padding(0,1).
	innerWidth := max(sb.width-2, 0)
	budget := innerWidth - lipgloss.Width(helpStr)

	var left strings.Builder
	used := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg.text)
		if seg.optional && used+w > budget {
			continue
		}
		left.WriteString(seg.text)
		used += w
	}

	gap := max(innerWidth-used-lipgloss.Width(helpStr), 0)
	content := left.String() + strings.Repeat(" ", gap) + helpStr

	return sb.theme.StatusBar.
		Width(sb.width).
		MaxHeight(1).
		Render(content)
}

func (sb StatusBarModel) toastSegment() string {
	icon := "•"
	switch sb.toast.Severity {
	case notify.SeverityError:
		icon = "✗"
	case notify.SeverityWarning:
		icon = "!"
	case notify.SeveritySuccess:
		icon = "✓"
	}
	text := sb.toast.Title
	if sb.toast.Message != "" {
		text += ": " + sb.toast.Message
	}
	return sb.theme.ToastStyle(sb.toast.Severity).Render(icon + " " + truncateName(text, max(sb.width/2, 10)))
}

// FilterSummary renders the active criteria compactly, or "none".
func FilterSummary(c task.FilterCriteria) string {
	if c.IsEmpty() {
		return "none"
	}
	var parts []string
	if c.Search != "" {
		parts = append(parts, "search=\""+c.Search+"\"")
	}
	if c.Status != "" {
		parts = append(parts, "status="+c.Status.Label())
	}
	if c.Progress != task.BucketAny {
		parts = append(parts, "progress="+string(c.Progress))
	}
	if c.DateFrom != "" {
		parts = append(parts, "from="+c.DateFrom)
	}
	if c.DateTo != "" {
		parts = append(parts, "to="+c.DateTo)
	}
	return strings.Join(parts, " ")
}
