package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// sampleTasks returns a fresh task list covering every status, a nil progress,
// and one record with malformed dates.
func sampleTasks() []Task {
	return []Task{
		{ID: "1", Name: "Requirements Review", Status: StatusCompleted, Progress: IntPtr(100), StartDate: "2024-01-01", EndDate: "2024-01-05"},
		{ID: "2", Name: "API design", Status: StatusInProgress, Progress: IntPtr(50), StartDate: "2024-01-06", EndDate: "2024-01-20"},
		{ID: "3", Name: "Database schema", Status: StatusNotStarted, Progress: IntPtr(0), StartDate: "2024-01-10", EndDate: "2024-01-25"},
		{ID: "4", Name: "Load testing", Status: StatusOnHold, Progress: IntPtr(80), StartDate: "2024-02-01", EndDate: "2024-02-10"},
		{ID: "5", Name: "Legacy import", Status: StatusCancelled, Progress: nil, StartDate: "2024-01-15", EndDate: "2024-01-18"},
		{ID: "6", Name: "Broken dates", Status: StatusInProgress, Progress: IntPtr(25), StartDate: "not-a-date", EndDate: "??"},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// ProgressBucket
// ---------------------------------------------------------------------------

func TestProgressBucket_Contains(t *testing.T) {
	tests := []struct {
		bucket   ProgressBucket
		progress int
		want     bool
	}{
		{BucketZero, 0, true},
		{BucketZero, 1, false},
		{Bucket1To25, 1, true},
		{Bucket1To25, 25, true},
		{Bucket1To25, 26, false},
		{Bucket26To50, 26, true},
		{Bucket26To50, 50, true},
		{Bucket51To75, 51, true},
		{Bucket51To75, 75, true},
		{Bucket76To99, 76, true},
		{Bucket76To99, 80, true},
		{Bucket76To99, 99, true},
		{Bucket76To99, 100, false},
		{BucketComplete, 100, true},
		{BucketComplete, 99, false},
		{BucketAny, 37, true},
		{ProgressBucket("bogus"), 37, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.bucket.Contains(tt.progress), "bucket %q progress %d", tt.bucket, tt.progress)
		})
	}
}

func TestProgressBuckets_PartitionZeroToHundred(t *testing.T) {
	t.Parallel()

	for p := 0; p <= 100; p++ {
		hits := 0
		for _, b := range ProgressBuckets() {
			if b.Contains(p) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "progress %d must fall in exactly one bucket", p)
	}
}

func TestProgressBucketFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BucketZero, ProgressBucketFor(0))
	assert.Equal(t, Bucket1To25, ProgressBucketFor(13))
	assert.Equal(t, Bucket26To50, ProgressBucketFor(50))
	assert.Equal(t, Bucket51To75, ProgressBucketFor(51))
	assert.Equal(t, Bucket76To99, ProgressBucketFor(99))
	assert.Equal(t, BucketComplete, ProgressBucketFor(100))
	assert.Equal(t, BucketZero, ProgressBucketFor(-5), "negative values clamp to 0")
	assert.Equal(t, BucketComplete, ProgressBucketFor(140), "values above 100 clamp to 100")
}

func TestProgressBucket_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, BucketAny.IsValid())
	for _, b := range ProgressBuckets() {
		assert.True(t, b.IsValid(), "bucket %q", b)
	}
	assert.False(t, ProgressBucket("0-10").IsValid())
}

// ---------------------------------------------------------------------------
// ApplyFilters
// ---------------------------------------------------------------------------

func TestApplyFilters_EmptyCriteriaReturnsDistinctCopy(t *testing.T) {
	t.Parallel()

	in := sampleTasks()
	out := ApplyFilters(in, FilterCriteria{})

	require.Equal(t, in, out, "empty criteria must keep every task in order")
	require.NotEmpty(t, out)
	assert.NotSame(t, &in[0], &out[0], "result must not share the input backing array")

	out[0].Name = "mutated"
	assert.Equal(t, "Requirements Review", in[0].Name)
}

func TestApplyFilters_EmptyInput(t *testing.T) {
	t.Parallel()

	out := ApplyFilters(nil, FilterCriteria{Search: "x"})
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = ApplyFilters([]Task{}, FilterCriteria{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name     string
		criteria FilterCriteria
		want     []string
	}{
		{name: "search is case insensitive", criteria: FilterCriteria{Search: "DESIGN"}, want: []string{"2"}},
		{name: "search substring", criteria: FilterCriteria{Search: "re"}, want: []string{"1"}},
		{name: "search without match", criteria: FilterCriteria{Search: "zzz"}, want: []string{}},
		{name: "status exact", criteria: FilterCriteria{Status: StatusCompleted}, want: []string{"1"}},
		{name: "status in progress keeps malformed dates", criteria: FilterCriteria{Status: StatusInProgress}, want: []string{"2", "6"}},
		{name: "bucket zero includes nil progress", criteria: FilterCriteria{Progress: BucketZero}, want: []string{"3", "5"}},
		{name: "bucket 1-25", criteria: FilterCriteria{Progress: Bucket1To25}, want: []string{"6"}},
		{name: "bucket 26-50", criteria: FilterCriteria{Progress: Bucket26To50}, want: []string{"2"}},
		{name: "bucket 76-99", criteria: FilterCriteria{Progress: Bucket76To99}, want: []string{"4"}},
		{name: "bucket 100", criteria: FilterCriteria{Progress: BucketComplete}, want: []string{"1"}},
		{name: "unknown bucket is inactive", criteria: FilterCriteria{Progress: "bogus"}, want: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "date from inclusive", criteria: FilterCriteria{DateFrom: "2024-01-06"}, want: []string{"2", "3", "4", "5"}},
		{name: "date to inclusive", criteria: FilterCriteria{DateTo: "2024-01-20"}, want: []string{"1", "2", "5"}},
		{name: "date window", criteria: FilterCriteria{DateFrom: "2024-01-05", DateTo: "2024-01-25"}, want: []string{"2", "3", "5"}},
		{name: "malformed bound excludes everything", criteria: FilterCriteria{DateFrom: "soon"}, want: []string{}},
		{name: "conjunction", criteria: FilterCriteria{Search: "a", Status: StatusInProgress, Progress: Bucket26To50}, want: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(ApplyFilters(sampleTasks(), tt.criteria)))
		})
	}
}

func TestApplyFilters_DateBoundaries(t *testing.T) {
	t.Parallel()

	tasks := []Task{{ID: "a", StartDate: "2024-03-10", EndDate: "2024-03-20"}}

	assert.Empty(t, ApplyFilters(tasks, FilterCriteria{DateFrom: "2024-03-11"}), "dateFrom after start excludes")
	assert.Len(t, ApplyFilters(tasks, FilterCriteria{DateFrom: "2024-03-10"}), 1, "dateFrom equal to start retains")
	assert.Len(t, ApplyFilters(tasks, FilterCriteria{DateFrom: "2024-03-09"}), 1)
	assert.Empty(t, ApplyFilters(tasks, FilterCriteria{DateTo: "2024-03-19"}), "dateTo before end excludes")
	assert.Len(t, ApplyFilters(tasks, FilterCriteria{DateTo: "2024-03-20"}), 1, "dateTo equal to end retains")
}

func TestApplyFilters_TimeOfDayIgnored(t *testing.T) {
	t.Parallel()

	tasks := []Task{{ID: "a", StartDate: "2024-03-10T18:00:00", EndDate: "2024-03-20T09:00:00"}}
	assert.Len(t, ApplyFilters(tasks, FilterCriteria{DateFrom: "2024-03-10", DateTo: "2024-03-20"}), 1)
}

// Malformed task dates only matter when a date bound is active.
func TestApplyFilters_MalformedTaskDates(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "ok", StartDate: "2024-01-01", EndDate: "2024-01-02"},
		{ID: "bad-start", StartDate: "garbage", EndDate: "2024-01-02"},
		{ID: "bad-end", StartDate: "2024-01-01", EndDate: ""},
	}

	assert.Equal(t, []string{"ok", "bad-start", "bad-end"}, ids(ApplyFilters(tasks, FilterCriteria{Search: ""})))
	assert.Equal(t, []string{"ok", "bad-end"}, ids(ApplyFilters(tasks, FilterCriteria{DateFrom: "2023-12-01"})))
	assert.Equal(t, []string{"ok", "bad-start"}, ids(ApplyFilters(tasks, FilterCriteria{DateTo: "2024-12-01"})))
}

func TestApplyFilters_Idempotent(t *testing.T) {
	criteria := []FilterCriteria{
		{},
		{Search: "a"},
		{Status: StatusInProgress},
		{Progress: Bucket76To99},
		{DateFrom: "2024-01-06", DateTo: "2024-02-28"},
	}

	for _, c := range criteria {
		t.Run(c.Search+string(c.Status)+string(c.Progress)+c.DateFrom, func(t *testing.T) {
			t.Parallel()
			once := ApplyFilters(sampleTasks(), c)
			twice := ApplyFilters(once, c)
			assert.Equal(t, once, twice)
		})
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := sampleTasks()
	_ = ApplyFilters(in, FilterCriteria{Search: "a", Progress: Bucket26To50})
	assert.Equal(t, sampleTasks(), in)
}

func TestApplyFilters_StatusExample(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "c", Status: StatusCompleted, Progress: IntPtr(100)},
		{ID: "i", Status: StatusInProgress, Progress: IntPtr(50)},
		{ID: "n", Status: StatusNotStarted, Progress: IntPtr(0)},
	}
	got := ApplyFilters(tasks, FilterCriteria{Status: StatusCompleted})
	require.Len(t, got, 1)
	assert.Equal(t, tasks[0], got[0])
}

func TestFilterCriteria_Matches(t *testing.T) {
	t.Parallel()

	c := FilterCriteria{Progress: Bucket76To99}
	assert.True(t, c.Matches(Task{Progress: IntPtr(80)}))
	assert.False(t, c.Matches(Task{Progress: IntPtr(100)}))
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.False(t, FilterCriteria{Search: " "}.IsEmpty())
	assert.False(t, FilterCriteria{DateTo: "2024-01-01"}.IsEmpty())
}
