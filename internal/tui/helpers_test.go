package tui

import (
	"context"
	"strings"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/source"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// stripANSI removes SGR escape sequences so assertions do not depend on the
// terminal color profile.
func stripANSI(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < '@' || s[i] > '~') {
				i++
			}
			i++
			continue
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "1", Name: "Design API", Status: task.StatusCompleted, Progress: task.IntPtr(100), StartDate: "2024-01-01", EndDate: "2024-01-10"},
		{ID: "2", Name: "Build API", Status: task.StatusInProgress, Progress: task.IntPtr(50), StartDate: "2024-01-11", EndDate: "2024-02-01"},
		{ID: "3", Name: "Write docs", Status: task.StatusNotStarted, StartDate: "2024-02-02", EndDate: "2024-02-10"},
	}
}

// fakeSource serves sampleTasks and counts invalidations.
type fakeSource struct {
	invalidated []string
	err         error
}

func (f *fakeSource) Load(_ context.Context, projectID string) (*source.Dataset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &source.Dataset{
		Project: task.Project{ID: projectID, Name: "Apollo"},
		Tasks:   sampleTasks(),
	}, nil
}

func (f *fakeSource) Invalidate(projectID string) {
	f.invalidated = append(f.invalidated, projectID)
}

// loadedSnapshot returns the snapshot of a store that has loaded the sample
// tasks.
func loadedSnapshot(criteria task.FilterCriteria, view board.ViewMode) board.Snapshot {
	st := board.NewStore(board.NewState(criteria, view), nil)
	_ = st.Load(context.Background(), &fakeSource{}, "p1")
	return st.Snapshot()
}
