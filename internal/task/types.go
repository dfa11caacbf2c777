// Package task defines the Gantt task model and the pure operations over it:
// filter evaluation, statistics and input validation.
package task

// TaskStatus represents the current state of a project task as reported by
// the Gantt service.
type TaskStatus string

const (
	// StatusNotStarted indicates work on the task has not begun.
	StatusNotStarted TaskStatus = "NOT_STARTED"

	// StatusInProgress indicates the task is currently being worked on.
	StatusInProgress TaskStatus = "IN_PROGRESS"

	// StatusCompleted indicates the task is finished.
	StatusCompleted TaskStatus = "COMPLETED"

	// StatusOnHold indicates the task is paused.
	StatusOnHold TaskStatus = "ON_HOLD"

	// StatusCancelled indicates the task was dropped.
	StatusCancelled TaskStatus = "CANCELLED"
)

// validStatuses is the set of all known TaskStatus values.
var validStatuses = map[TaskStatus]bool{
	StatusNotStarted: true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusOnHold:     true,
	StatusCancelled:  true,
}

// statusLabels holds the human-readable label for each status.
var statusLabels = map[TaskStatus]string{
	StatusNotStarted: "Not started",
	StatusInProgress: "In progress",
	StatusCompleted:  "Completed",
	StatusOnHold:     "On hold",
	StatusCancelled:  "Cancelled",
}

// Task is a single unit of project work. Tasks are supplied by an external
// data source and are read-only to Gantry.
//
// Dates are kept exactly as the source delivered them and parsed on demand,
// so a malformed value only affects the comparisons that need it.
type Task struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Status    TaskStatus `json:"status" yaml:"status"`
	Progress  *int       `json:"progress,omitempty" yaml:"progress,omitempty"`
	StartDate string     `json:"startDate" yaml:"start_date"`
	EndDate   string     `json:"endDate" yaml:"end_date"`
}

// Project is the header record of a Gantt project.
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	EndDate     string `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
}

// ProgressOrZero returns the task progress, treating an absent value as 0.
func (t Task) ProgressOrZero() int {
	if t.Progress == nil {
		return 0
	}
	return *t.Progress
}

// IntPtr returns a pointer to v. Handy for building tasks with a progress.
func IntPtr(v int) *int {
	return &v
}

// ValidStatus returns true if the status is a known TaskStatus value.
func ValidStatus(s TaskStatus) bool {
	return validStatuses[s]
}

// ValidStatuses returns all valid task status values in workflow order.
func ValidStatuses() []TaskStatus {
	return []TaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled}
}

// IsValid returns true if the status is a recognized value.
func (s TaskStatus) IsValid() bool {
	return validStatuses[s]
}

// Label returns a human-readable label for the status, or "Unknown".
func (s TaskStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// CloneTasks returns a copy of tasks with every Progress pointer duplicated,
// so the result shares no memory with the input. A nil input yields an empty,
// non-nil slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.Progress != nil {
			t.Progress = IntPtr(*t.Progress)
		}
		out[i] = t
	}
	return out
}
