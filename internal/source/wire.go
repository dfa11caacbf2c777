package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// apiEnvelope is the uniform response wrapper used by the Gantt REST API.
type apiEnvelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// unwrapEnvelope returns the payload of body. A JSON object carrying a "data"
// or "error" key is treated as an envelope; anything else is returned as is.
// An envelope with status "error" becomes an error.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	_, hasData := probe["data"]
	_, hasError := probe["error"]
	if !hasData && !hasError {
		return trimmed, nil
	}

	var env apiEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	if env.Status == "error" || (env.Error != nil && len(env.Data) == 0) {
		if env.Error != nil {
			return nil, fmt.Errorf("api error %s: %s", env.Error.Code, env.Error.Message)
		}
		return nil, fmt.Errorf("api error: %s", env.Message)
	}
	return env.Data, nil
}

// flexString accepts a JSON string or number. Entity identifiers are numeric
// on the wire but opaque strings in Gantry.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decoding identifier: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// flexDate accepts an ISO date string or the [year, month, day] array form
// some serializers emit for calendar dates.
type flexDate string

func (f *flexDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil {
			return fmt.Errorf("decoding date array: %w", err)
		}
		if len(parts) < 3 {
			// Keep the raw text; the filter treats it as a malformed date.
			*f = flexDate(string(b))
			return nil
		}
		*f = flexDate(fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2]))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*f = flexDate(string(b))
		return nil
	}
	*f = flexDate(s)
	return nil
}

// taskDTO mirrors the task representation returned by the API.
type taskDTO struct {
	ID        flexString `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Progress  *float64   `json:"progress"`
	StartDate flexDate   `json:"startDate"`
	EndDate   flexDate   `json:"endDate"`
}

func (d taskDTO) toTask() task.Task {
	t := task.Task{
		ID:        string(d.ID),
		Name:      d.Name,
		Status:    task.TaskStatus(d.Status),
		StartDate: string(d.StartDate),
		EndDate:   string(d.EndDate),
	}
	if d.Progress != nil {
		t.Progress = task.IntPtr(int(math.Round(*d.Progress)))
	}
	return t
}

// projectDTO mirrors the project representation returned by the API.
type projectDTO struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   flexDate   `json:"startDate"`
	EndDate     flexDate   `json:"endDate"`
	Status      string     `json:"status"`
}

func (d projectDTO) toProject() task.Project {
	return task.Project{
		ID:          string(d.ID),
		Name:        d.Name,
		Description: d.Description,
		StartDate:   string(d.StartDate),
		EndDate:     string(d.EndDate),
		Status:      d.Status,
	}
}

// decodeProject decodes a project payload (bare or enveloped).
func decodeProject(body []byte) (task.Project, error) {
	payload, err := unwrapEnvelope(body)
	if err != nil {
		return task.Project{}, err
	}
	var dto projectDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return task.Project{}, fmt.Errorf("decoding project: %w", err)
	}
	return dto.toProject(), nil
}

// decodeTasks decodes a task list payload (bare or enveloped). A single task
// object is accepted as a one-element list. A JSON null decodes to an empty
// list.
func decodeTasks(body []byte) ([]task.Task, error) {
	payload, err := unwrapEnvelope(body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(payload)
	var dtos []taskDTO
	switch {
	case len(trimmed) == 0 || string(trimmed) == "null":
	case trimmed[0] == '{':
		var one taskDTO
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("decoding task: %w", err)
		}
		dtos = []taskDTO{one}
	default:
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return nil, fmt.Errorf("decoding tasks: %w", err)
		}
	}

	tasks := make([]task.Task, 0, len(dtos))
	for _, d := range dtos {
		tasks = append(tasks, d.toTask())
	}
	return tasks, nil
}
