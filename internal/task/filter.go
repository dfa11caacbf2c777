package task

import (
	"strings"
	"time"
)

// ProgressBucket is a named inclusive percentage range used for coarse
// filtering. The empty bucket places no constraint on progress.
type ProgressBucket string

const (
	BucketAny      ProgressBucket = ""
	BucketZero     ProgressBucket = "0"
	Bucket1To25    ProgressBucket = "1-25"
	Bucket26To50   ProgressBucket = "26-50"
	Bucket51To75   ProgressBucket = "51-75"
	Bucket76To99   ProgressBucket = "76-99"
	BucketComplete ProgressBucket = "100"
)

// bucketRange holds the inclusive bounds of a bucket.
type bucketRange struct {
	lo, hi int
}

var bucketRanges = map[ProgressBucket]bucketRange{
	BucketZero:     {0, 0},
	Bucket1To25:    {1, 25},
	Bucket26To50:   {26, 50},
	Bucket51To75:   {51, 75},
	Bucket76To99:   {76, 99},
	BucketComplete: {100, 100},
}

// ProgressBuckets returns every non-empty bucket in ascending order. Together
// they partition 0..100 without overlap.
func ProgressBuckets() []ProgressBucket {
	return []ProgressBucket{BucketZero, Bucket1To25, Bucket26To50, Bucket51To75, Bucket76To99, BucketComplete}
}

// IsValid reports whether b is the empty bucket or one of ProgressBuckets.
func (b ProgressBucket) IsValid() bool {
	if b == BucketAny {
		return true
	}
	_, ok := bucketRanges[b]
	return ok
}

// Contains reports whether progress falls within the bucket. The empty bucket
// and unrecognized bucket names contain every value.
func (b ProgressBucket) Contains(progress int) bool {
	r, ok := bucketRanges[b]
	if !ok {
		return true
	}
	return progress >= r.lo && progress <= r.hi
}

// ProgressBucketFor returns the unique bucket containing progress. Values
// outside 0..100 are clamped first.
func ProgressBucketFor(progress int) ProgressBucket {
	progress = min(max(progress, 0), 100)
	for _, b := range ProgressBuckets() {
		if b.Contains(progress) {
			return b
		}
	}
	return BucketAny
}

// FilterCriteria is the set of active constraints narrowing a task list. Any
// field left at its zero value is inactive and always matches.
type FilterCriteria struct {
	Search   string         `json:"search" yaml:"search"`
	Status   TaskStatus     `json:"status" yaml:"status"`
	Progress ProgressBucket `json:"progress" yaml:"progress"`
	DateFrom string         `json:"dateFrom" yaml:"date_from"`
	DateTo   string         `json:"dateTo" yaml:"date_to"`
}

// IsEmpty reports whether no criterion is active.
func (c FilterCriteria) IsEmpty() bool {
	return c == FilterCriteria{}
}

// ApplyFilters returns the tasks matching every active criterion in c, in
// their original order. The result is always a new slice, even when no
// criterion is active, so callers may modify it freely.
//
// A task whose date cannot be parsed does not satisfy a date bound; neither
// does any task when the bound itself cannot be parsed. Malformed data never
// aborts the pass.
func ApplyFilters(tasks []Task, c FilterCriteria) []Task {
	m := newMatcher(c)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if m.match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether a single task satisfies c.
func (c FilterCriteria) Matches(t Task) bool {
	return newMatcher(c).match(t)
}

// matcher holds criteria with the search term lowered and date bounds parsed
// once per pass.
type matcher struct {
	c        FilterCriteria
	search   string
	from, to time.Time
	fromErr  error
	toErr    error
}

func newMatcher(c FilterCriteria) matcher {
	m := matcher{c: c, search: strings.ToLower(c.Search)}
	if c.DateFrom != "" {
		m.from, m.fromErr = ParseDate(c.DateFrom)
	}
	if c.DateTo != "" {
		m.to, m.toErr = ParseDate(c.DateTo)
	}
	return m
}

func (m matcher) match(t Task) bool {
	if m.search != "" && !strings.Contains(strings.ToLower(t.Name), m.search) {
		return false
	}

	if m.c.Status != "" && t.Status != m.c.Status {
		return false
	}

	if m.c.Progress != BucketAny && !m.c.Progress.Contains(t.ProgressOrZero()) {
		return false
	}

	if m.c.DateFrom != "" {
		if m.fromErr != nil {
			return false
		}
		start, err := t.StartTime()
		if err != nil || start.Before(m.from) {
			return false
		}
	}

	if m.c.DateTo != "" {
		if m.toErr != nil {
			return false
		}
		end, err := t.EndTime()
		if err != nil || end.After(m.to) {
			return false
		}
	}

	return true
}
