// Package source loads a Gantt project and its task list from an external
// collaborator: the Gantt REST API or a set of local JSON files. Sources never
// retry; a failed load is reported as a *DataLoadError and the caller decides
// how to surface it.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// Kind names a source implementation in configuration.
const (
	KindHTTP = "http"
	KindFile = "file"
)

// ErrNotFound is wrapped by DataLoadError when the project does not exist.
var ErrNotFound = errors.New("not found")

// Dataset is the result of a successful load.
type Dataset struct {
	Project task.Project
	Tasks   []task.Task
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	return &Dataset{Project: d.Project, Tasks: task.CloneTasks(d.Tasks)}
}

// Source loads project data for a project identifier.
type Source interface {
	Load(ctx context.Context, projectID string) (*Dataset, error)
}

// DataLoadError reports a failed fetch or decode of project or task data.
type DataLoadError struct {
	// Op is the resource being loaded: "project" or "tasks".
	Op        string
	ProjectID string
	// StatusCode is the HTTP status when the failure came from a response.
	StatusCode int
	Err        error
}

func (e *DataLoadError) Error() string {
	msg := fmt.Sprintf("loading %s for project %q", e.Op, e.ProjectID)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Options configures New.
type Options struct {
	Kind string

	// HTTP source.
	APIURL  string
	Timeout time.Duration

	// File source.
	ProjectFile string
	TasksGlob   string

	// Cache; a zero TTL disables caching.
	CacheTTL      time.Duration
	CacheMaxBytes int64
}

// New builds the source described by opts, wrapped in a CachedSource when a
// cache TTL is configured.
func New(opts Options) (Source, error) {
	var src Source
	switch opts.Kind {
	case KindHTTP, "":
		if opts.APIURL == "" {
			return nil, fmt.Errorf("creating http source: api url must not be empty")
		}
		src = NewHTTPSource(opts.APIURL, opts.Timeout)
	case KindFile:
		if opts.TasksGlob == "" {
			return nil, fmt.Errorf("creating file source: tasks glob must not be empty")
		}
		src = NewFileSource(opts.ProjectFile, opts.TasksGlob)
	default:
		return nil, fmt.Errorf("creating source: unknown kind %q", opts.Kind)
	}

	if opts.CacheTTL <= 0 {
		return src, nil
	}
	cached, err := NewCachedSource(src, opts.CacheTTL, opts.CacheMaxBytes)
	if err != nil {
		return nil, fmt.Errorf("creating source cache: %w", err)
	}
	return cached, nil
}
