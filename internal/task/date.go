package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar date layout used for display and for
// filter bounds.
const DateLayout = "2006-01-02"

// dateLayouts lists every layout ParseDate accepts, tried in order. The
// second entry is the form the Gantt service uses for LocalDateTime fields.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses s into a calendar day (midnight UTC). Time-of-day and zone
// information are discarded after parsing so that only the date is compared.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parsing date: empty value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: unrecognized format", s)
}

// StartTime returns the parsed start date of the task.
func (t Task) StartTime() (time.Time, error) {
	return ParseDate(t.StartDate)
}

// EndTime returns the parsed end date of the task.
func (t Task) EndTime() (time.Time, error) {
	return ParseDate(t.EndDate)
}

// DurationDays returns the number of calendar days covered by [start, end],
// counting both ends. An inverted range yields a value <= 0.
func DurationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
