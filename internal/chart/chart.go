// Package chart draws a task list as a text Gantt chart: one row per task
// with a bar positioned on a shared day axis and filled to the task's
// progress.
package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// DefaultWidth is the number of columns used for bars when Options.Width is
// not set.
const DefaultWidth = 60

const (
	maxLabelWidth = 28
	minWidth      = 10

	fillRune    = '█'
	remainRune  = '░'
	unknownMark = "?"
)

// Options controls Render.
type Options struct {
	// Width is the number of columns the day axis spans.
	Width int
	// LabelWidth caps the task-name column. Zero sizes it to the longest name.
	LabelWidth int
	// Today, when inside the axis, is marked in the header.
	Today time.Time
}

// row is one parsed task.
type row struct {
	t          task.Task
	start, end time.Time
	ok         bool
}

// Render draws tasks as a Gantt chart. Tasks keep their input order. A task
// with a missing, malformed or inverted date range is drawn with a "?"
// marker instead of a bar. An empty list renders a one-line placeholder.
func Render(tasks []task.Task, opts Options) string {
	if len(tasks) == 0 {
		return "No tasks to display."
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	rows := make([]row, len(tasks))
	var lo, hi time.Time
	for i, t := range tasks {
		r := row{t: t}
		s, errS := t.StartTime()
		e, errE := t.EndTime()
		if errS == nil && errE == nil && !e.Before(s) {
			r.start, r.end, r.ok = s, e, true
			if lo.IsZero() || s.Before(lo) {
				lo = s
			}
			if hi.IsZero() || e.After(hi) {
				hi = e
			}
		}
		rows[i] = r
	}

	labelWidth := opts.LabelWidth
	if labelWidth <= 0 {
		for _, r := range rows {
			labelWidth = max(labelWidth, lipgloss.Width(r.t.Name))
		}
		labelWidth = min(labelWidth, maxLabelWidth)
	}
	labelWidth = max(labelWidth, 4)

	var b strings.Builder
	if !lo.IsZero() {
		b.WriteString(header(lo, hi, width, labelWidth, opts.Today))
		b.WriteByte('\n')
	}

	span := 0
	if !lo.IsZero() {
		span = task.DurationDays(lo, hi)
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth)
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(labelStyle.Render(truncate(r.t.Name, labelWidth)))
		b.WriteString(" │")
		if !r.ok {
			b.WriteString(unknownMark)
			b.WriteString(strings.Repeat(" ", width-1))
			b.WriteString("│")
			continue
		}
		b.WriteString(bar(r, lo, span, width))
		b.WriteString("│ ")
		b.WriteString(fmt.Sprintf("%3d%% %dd", r.t.ProgressOrZero(), task.DurationDays(r.start, r.end)))
	}
	return b.String()
}

// header renders the axis line: first date on the left, last date on the
// right, and an optional today marker.
func header(lo, hi time.Time, width, labelWidth int, today time.Time) string {
	axis := []rune(strings.Repeat(" ", width))
	left := lo.Format(task.DateLayout)
	right := hi.Format(task.DateLayout)
	copy(axis, []rune(left))
	if len(right) <= width-len(left)-1 {
		copy(axis[width-len(right):], []rune(right))
	}
	if !today.IsZero() {
		d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if !d.Before(lo) && !d.After(hi) {
			span := task.DurationDays(lo, hi)
			col := int(d.Sub(lo).Hours()/24) * width / span
			axis[min(col, width-1)] = '▼'
		}
	}
	return strings.Repeat(" ", labelWidth) + "  " + string(axis)
}

// bar renders the columns for one task. Every task with a valid range gets
// at least one column.
func bar(r row, lo time.Time, span, width int) string {
	offset := int(r.start.Sub(lo).Hours() / 24)
	length := task.DurationDays(r.start, r.end)

	from := offset * width / span
	to := ((offset+length)*width + span - 1) / span
	if to <= from {
		to = from + 1
	}
	to = min(to, width)
	if from >= to {
		from = to - 1
	}

	barLen := to - from
	filled := (barLen*r.t.ProgressOrZero() + 50) / 100
	filled = min(max(filled, 0), barLen)

	style := lipgloss.NewStyle().Foreground(StatusColor(r.t.Status))
	cells := strings.Repeat(string(fillRune), filled) + strings.Repeat(string(remainRune), barLen-filled)
	return strings.Repeat(" ", from) + style.Render(cells) + strings.Repeat(" ", width-to)
}

// truncate shortens s to at most n display columns, ending with an ellipsis
// when cut.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Legend renders one coloured swatch per status.
func Legend() string {
	parts := make([]string, 0, 5)
	for _, s := range task.ValidStatuses() {
		swatch := lipgloss.NewStyle().Foreground(StatusColor(s)).Render(string(fillRune))
		parts = append(parts, swatch+" "+s.Label())
	}
	return strings.Join(parts, "  ")
}
