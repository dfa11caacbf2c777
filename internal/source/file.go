package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// projectIDPlaceholder is replaced with the requested project ID in file
// source paths, so one configuration can serve many projects.
const projectIDPlaceholder = "{id}"

// FileSource loads a project from local JSON files: one project file and any
// number of task files selected by a doublestar glob. Each task file holds a
// single task, an array of tasks, or an API envelope around either. Files are
// read in lexical path order, which fixes the task order.
type FileSource struct {
	projectFile string
	tasksGlob   string
}

// NewFileSource creates a FileSource. projectFile may be empty, in which case
// the project header is synthesized from the requested ID.
func NewFileSource(projectFile, tasksGlob string) *FileSource {
	return &FileSource{projectFile: projectFile, tasksGlob: tasksGlob}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context, projectID string) (*Dataset, error) {
	logger := logging.New("source")

	project := task.Project{ID: projectID, Name: projectID}
	if s.projectFile != "" {
		path := expandID(s.projectFile, projectID)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("%s: %w", path, ErrNotFound)
			}
			return nil, &DataLoadError{Op: "project", ProjectID: projectID, Err: err}
		}
		p, err := decodeProject(data)
		if err != nil {
			return nil, &DataLoadError{Op: "project", ProjectID: projectID, Err: fmt.Errorf("%s: %w", path, err)}
		}
		if p.ID == "" {
			p.ID = projectID
		}
		project = p
	}

	pattern := expandID(s.tasksGlob, projectID)
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &DataLoadError{Op: "tasks", ProjectID: projectID, Err: fmt.Errorf("matching %q: %w", pattern, err)}
	}
	sort.Strings(matches)

	tasks := make([]task.Task, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, &DataLoadError{Op: "tasks", ProjectID: projectID, Err: err}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &DataLoadError{Op: "tasks", ProjectID: projectID, Err: err}
		}
		ts, err := decodeTasks(data)
		if err != nil {
			return nil, &DataLoadError{Op: "tasks", ProjectID: projectID, Err: fmt.Errorf("%s: %w", path, err)}
		}
		tasks = append(tasks, ts...)
	}

	logger.Debug("loaded project from files", "project", projectID, "files", len(matches), "tasks", len(tasks))
	return &Dataset{Project: project, Tasks: tasks}, nil
}

func expandID(path, projectID string) string {
	return strings.ReplaceAll(path, projectIDPlaceholder, projectID)
}
