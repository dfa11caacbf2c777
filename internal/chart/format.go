package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// DefaultDateFormat is the pattern FormatDate uses when none is given.
const DefaultDateFormat = "yyyy-MM-dd"

// FormatDate renders a task date string with a pattern made of the tokens
// "yyyy", "MM" and "dd", for example "dd/MM/yyyy". An empty input yields ""
// and an unparseable one is returned unchanged.
func FormatDate(date, pattern string) string {
	if strings.TrimSpace(date) == "" {
		return ""
	}
	t, err := task.ParseDate(date)
	if err != nil {
		return date
	}
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	r := strings.NewReplacer(
		"yyyy", t.Format("2006"),
		"MM", t.Format("01"),
		"dd", t.Format("02"),
	)
	return r.Replace(pattern)
}

// DurationDays returns the inclusive number of days a task spans. ok is
// false when either date is missing or malformed.
func DurationDays(t task.Task) (days int, ok bool) {
	start, err := t.StartTime()
	if err != nil {
		return 0, false
	}
	end, err := t.EndTime()
	if err != nil {
		return 0, false
	}
	return task.DurationDays(start, end), true
}

var statusColors = map[task.TaskStatus]lipgloss.Color{
	task.StatusNotStarted: "#6c757d",
	task.StatusInProgress: "#17a2b8",
	task.StatusCompleted:  "#28a745",
	task.StatusOnHold:     "#ffc107",
	task.StatusCancelled:  "#dc3545",
}

// StatusColor returns the display colour for a status. Unknown statuses use
// the NOT_STARTED grey.
func StatusColor(s task.TaskStatus) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[task.StatusNotStarted]
}

// StatusBadge renders the status label in its colour.
func StatusBadge(s task.TaskStatus) string {
	return lipgloss.NewStyle().Foreground(StatusColor(s)).Render(s.Label())
}
