package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// DefaultTimeout bounds a whole load when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 32 << 20

// HTTPSource loads data from the Gantt REST API:
//
//	GET {base}/projects/{id}
//	GET {base}/projects/{id}/tasks
//
// Both requests are issued concurrently; either failing fails the load.
type HTTPSource struct {
	base    string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPSource creates an HTTPSource rooted at baseURL (for example
// "http://localhost:8080/api/v1"). A non-positive timeout uses DefaultTimeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{
		base:    strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: timeout,
	}
}

// WithClient replaces the HTTP client. Intended for tests and custom transports.
func (s *HTTPSource) WithClient(c *http.Client) *HTTPSource {
	s.client = c
	return s
}

// Load implements Source.
func (s *HTTPSource) Load(ctx context.Context, projectID string) (*Dataset, error) {
	logger := logging.New("source")

	if strings.TrimSpace(projectID) == "" {
		return nil, &DataLoadError{Op: "project", ProjectID: projectID, Err: fmt.Errorf("project id must not be empty")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		project task.Project
		tasks   []task.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := s.get(gctx, "project", projectID, "projects", projectID)
		if err != nil {
			return err
		}
		p, err := decodeProject(body)
		if err != nil {
			return &DataLoadError{Op: "project", ProjectID: projectID, Err: err}
		}
		project = p
		return nil
	})
	g.Go(func() error {
		body, err := s.get(gctx, "tasks", projectID, "projects", projectID, "tasks")
		if err != nil {
			return err
		}
		ts, err := decodeTasks(body)
		if err != nil {
			return &DataLoadError{Op: "tasks", ProjectID: projectID, Err: err}
		}
		tasks = ts
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Debug("load failed", "project", projectID, "error", err)
		return nil, err
	}

	if project.ID == "" {
		project.ID = projectID
	}
	logger.Debug("loaded project", "project", projectID, "tasks", len(tasks))
	return &Dataset{Project: project, Tasks: tasks}, nil
}

// get performs a GET on base joined with the escaped path segments and
// returns the body of a 2xx response.
func (s *HTTPSource) get(ctx context.Context, op, projectID string, segments ...string) ([]byte, error) {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}
	target := s.base + "/" + strings.Join(escaped, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &DataLoadError{Op: op, ProjectID: projectID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.GetInfo().UserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &DataLoadError{Op: op, ProjectID: projectID, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &DataLoadError{Op: op, ProjectID: projectID, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &DataLoadError{Op: op, ProjectID: projectID, StatusCode: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		cause := fmt.Errorf("unexpected status %s", resp.Status)
		if _, apiErr := unwrapEnvelope(body); apiErr != nil {
			cause = fmt.Errorf("unexpected status %s: %w", resp.Status, apiErr)
		}
		return nil, &DataLoadError{Op: op, ProjectID: projectID, StatusCode: resp.StatusCode, Err: cause}
	}

	return body, nil
}
