package task

import "math"

// Statistics summarizes a task list. It is always derived from a list and is
// never updated in place.
//
// CompletedTasks, InProgressTasks and NotStartedTasks count exact status
// matches only. ON_HOLD and CANCELLED tasks contribute to TotalTasks but to
// none of the three named counts, so the counts need not sum to TotalTasks.
type Statistics struct {
	TotalTasks        int     `json:"totalTasks" yaml:"total_tasks"`
	CompletedTasks    int     `json:"completedTasks" yaml:"completed_tasks"`
	InProgressTasks   int     `json:"inProgressTasks" yaml:"in_progress_tasks"`
	NotStartedTasks   int     `json:"notStartedTasks" yaml:"not_started_tasks"`
	OverallProgress   int     `json:"overallProgress" yaml:"overall_progress"`
	CompletedPercent  float64 `json:"completedPercent" yaml:"completed_percent"`
	InProgressPercent float64 `json:"inProgressPercent" yaml:"in_progress_percent"`
}

// CalculateStatistics computes summary counts and percentages for tasks in a
// single pass. OverallProgress is the mean progress (absent progress counts
// as 0) rounded half away from zero. An empty list yields all zeros.
func CalculateStatistics(tasks []Task) Statistics {
	var s Statistics
	s.TotalTasks = len(tasks)
	if s.TotalTasks == 0 {
		return s
	}

	sum := 0
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			s.CompletedTasks++
		case StatusInProgress:
			s.InProgressTasks++
		case StatusNotStarted:
			s.NotStartedTasks++
		}
		sum += t.ProgressOrZero()
	}

	total := float64(s.TotalTasks)
	s.OverallProgress = int(math.Round(float64(sum) / total))
	s.CompletedPercent = float64(s.CompletedTasks) / total * 100
	s.InProgressPercent = float64(s.InProgressTasks) / total * 100
	return s
}

// StatusCounts returns the number of tasks per status, including ON_HOLD,
// CANCELLED and any unrecognized status value.
func StatusCounts(tasks []Task) map[TaskStatus]int {
	counts := make(map[TaskStatus]int, len(validStatuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// BucketCounts partitions tasks by progress bucket. Every task lands in
// exactly one bucket, so the counts always sum to len(tasks).
func BucketCounts(tasks []Task) map[ProgressBucket]int {
	counts := make(map[ProgressBucket]int, len(bucketRanges))
	for _, b := range ProgressBuckets() {
		counts[b] = 0
	}
	for _, t := range tasks {
		counts[ProgressBucketFor(t.ProgressOrZero())]++
	}
	return counts
}
