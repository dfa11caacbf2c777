package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response is the envelope every endpoint returns. It mirrors the shape the
// Gantt REST API uses so the same clients can read both.
type Response struct {
	Status    string        `json:"status"`
	Data      any           `json:"data,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Error     *ErrorDetails `json:"error,omitempty"`
}

// ErrorDetails describes a failed request. Field names the offending query
// parameter for validation failures.
type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error codes.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeProjectNotFound = "PROJECT_NOT_FOUND"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeNotFound        = "NOT_FOUND"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, body Response) {
	body.Timestamp = s.now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	s.writeJSON(w, http.StatusOK, Response{Status: "success", Data: data})
}

func (s *Server) writeError(w http.ResponseWriter, status int, details ErrorDetails) {
	s.writeJSON(w, status, Response{Status: "error", Error: &details})
}
