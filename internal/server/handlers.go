package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/source"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// ganttPayload is the combined view returned by /gantt.
type ganttPayload struct {
	Project    task.Project        `json:"project"`
	Criteria   task.FilterCriteria `json:"criteria"`
	Tasks      []task.Task         `json:"tasks"`
	Statistics task.Statistics     `json:"statistics"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeData(w, map[string]string{
		"status":  "ok",
		"version": buildinfo.GetInfo().Version,
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	_, filtered, ok := s.loadFiltered(w, r)
	if !ok {
		return
	}
	s.writeData(w, filtered)
}

// handleStatistics answers with the statistics of the filtered tasks. The
// ETag covers both the criteria and the result, so a client polling with
// If-None-Match gets 304 until either changes.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	c, filtered, ok := s.loadFiltered(w, r)
	if !ok {
		return
	}
	stats := task.CalculateStatistics(filtered)

	etag, err := statisticsETag(c, stats)
	if err != nil {
		s.logger.Error("computing etag", "error", err)
	} else {
		w.Header().Set("ETag", etag)
		if etagMatches(r.Header.Values("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	s.writeData(w, stats)
}

func (s *Server) handleGantt(w http.ResponseWriter, r *http.Request) {
	c := criteriaFromQuery(r.URL.Query())
	if !s.validate(w, c) {
		return
	}
	ds, ok := s.load(w, r)
	if !ok {
		return
	}
	filtered := task.ApplyFilters(ds.Tasks, c)
	s.writeData(w, ganttPayload{
		Project:    ds.Project,
		Criteria:   c,
		Tasks:      filtered,
		Statistics: task.CalculateStatistics(filtered),
	})
}

// loadFiltered validates the query, loads the project and applies the
// filters. It writes the error response itself and reports false on failure.
func (s *Server) loadFiltered(w http.ResponseWriter, r *http.Request) (task.FilterCriteria, []task.Task, bool) {
	c := criteriaFromQuery(r.URL.Query())
	if !s.validate(w, c) {
		return c, nil, false
	}
	ds, ok := s.load(w, r)
	if !ok {
		return c, nil, false
	}
	return c, task.ApplyFilters(ds.Tasks, c), true
}

func (s *Server) validate(w http.ResponseWriter, c task.FilterCriteria) bool {
	err := c.Validate()
	if err == nil {
		return true
	}
	details := ErrorDetails{Code: CodeValidation, Message: err.Error()}
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		details.Field = ve.Field
		details.Message = ve.Message
	}
	s.writeError(w, http.StatusBadRequest, details)
	return false
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*source.Dataset, bool) {
	projectID := chi.URLParam(r, "id")
	ds, err := s.src.Load(r.Context(), projectID)
	if err == nil {
		return ds, true
	}

	s.logger.Warn("loading project failed", "project", projectID, "error", err)
	if errors.Is(err, source.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, ErrorDetails{
			Code:    CodeProjectNotFound,
			Message: fmt.Sprintf("project %q not found", projectID),
		})
		return nil, false
	}
	s.writeError(w, http.StatusBadGateway, ErrorDetails{Code: CodeUpstream, Message: err.Error()})
	return nil, false
}

// criteriaFromQuery reads filter criteria from query parameters. Status is
// upper-cased so "completed" and "COMPLETED" are equivalent. Search is kept
// verbatim: surrounding spaces are part of the substring being matched.
func criteriaFromQuery(q url.Values) task.FilterCriteria {
	return task.FilterCriteria{
		Search:   q.Get("search"),
		Status:   task.TaskStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
		Progress: task.ProgressBucket(strings.TrimSpace(q.Get("progress"))),
		DateFrom: strings.TrimSpace(q.Get("dateFrom")),
		DateTo:   strings.TrimSpace(q.Get("dateTo")),
	}
}

func statisticsETag(c task.FilterCriteria, stats task.Statistics) (string, error) {
	body, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("encoding statistics: %w", err)
	}
	d := xxhash.New()
	_, _ = fmt.Fprintf(d, "%016x", c.Fingerprint())
	_, _ = d.Write(body)
	return fmt.Sprintf(`"%016x"`, d.Sum64()), nil
}

// etagMatches applies the weak comparison If-None-Match calls for (RFC 9110
// section 13.1.2): any listed tag equal to etag once a "W/" prefix is
// dropped, or "*", is a match.
func etagMatches(headers []string, etag string) bool {
	for _, h := range headers {
		for _, candidate := range strings.Split(h, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
				return true
			}
		}
	}
	return false
}
