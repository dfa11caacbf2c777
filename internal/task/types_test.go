package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   bool
	}{
		{name: "NOT_STARTED is valid", status: StatusNotStarted, want: true},
		{name: "IN_PROGRESS is valid", status: StatusInProgress, want: true},
		{name: "COMPLETED is valid", status: StatusCompleted, want: true},
		{name: "ON_HOLD is valid", status: StatusOnHold, want: true},
		{name: "CANCELLED is valid", status: StatusCancelled, want: true},
		{name: "empty string is invalid", status: "", want: false},
		{name: "lowercase is invalid", status: "completed", want: false},
		{name: "random string is invalid", status: "foobar", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidStatus(tt.status))
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestValidStatuses_Order(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []TaskStatus{
		StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled,
	}, ValidStatuses())
}

func TestTaskStatus_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Not started", StatusNotStarted.Label())
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Completed", StatusCompleted.Label())
	assert.Equal(t, "On hold", StatusOnHold.Label())
	assert.Equal(t, "Cancelled", StatusCancelled.Label())
	assert.Equal(t, "Unknown", TaskStatus("ARCHIVED").Label())
}

func TestTask_ProgressOrZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Task{}.ProgressOrZero())
	assert.Equal(t, 0, Task{Progress: IntPtr(0)}.ProgressOrZero())
	assert.Equal(t, 42, Task{Progress: IntPtr(42)}.ProgressOrZero())
}

func TestTask_JSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Task{
		ID:        "7",
		Name:      "Design",
		Status:    StatusInProgress,
		Progress:  IntPtr(30),
		StartDate: "2024-01-01",
		EndDate:   "2024-01-10",
	})
	require.NoError(t, err)

	raw := string(data)
	assert.Contains(t, raw, `"startDate":"2024-01-01"`)
	assert.Contains(t, raw, `"endDate":"2024-01-10"`)
	assert.Contains(t, raw, `"status":"IN_PROGRESS"`)
	assert.Contains(t, raw, `"progress":30`)
}

func TestTask_JSONOmitsAbsentProgress(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Task{ID: "1", Name: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "progress")
}

func TestCloneTasks_NoSharedProgress(t *testing.T) {
	t.Parallel()

	in := []Task{{ID: "1", Progress: IntPtr(10)}, {ID: "2"}}
	out := CloneTasks(in)

	require.Len(t, out, 2)
	assert.Equal(t, in, out)
	*out[0].Progress = 99
	assert.Equal(t, 10, *in[0].Progress, "clone must not alias the input progress")
	assert.Nil(t, out[1].Progress)
}

func TestCloneTasks_NilInput(t *testing.T) {
	t.Parallel()

	out := CloneTasks(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
