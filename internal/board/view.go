package board

import (
	"fmt"
	"strings"
)

// ViewMode selects how the task list is presented.
type ViewMode string

const (
	// ViewBasic is the plain task list.
	ViewBasic ViewMode = "basic"
	// ViewD3 is the Gantt chart view. The value matches the name the web
	// client used for its chart renderer.
	ViewD3 ViewMode = "d3"
)

// ParseViewMode converts a configuration or flag value into a ViewMode.
// "chart" is accepted as an alias for "d3"; the empty string is basic.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return ViewBasic, nil
	case "d3", "chart":
		return ViewD3, nil
	default:
		return "", fmt.Errorf("unknown view %q; must be one of: basic, d3", s)
	}
}

// Toggle returns the other view.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewD3 {
		return ViewBasic
	}
	return ViewD3
}

// Label returns a short display name.
func (v ViewMode) Label() string {
	if v == ViewD3 {
		return "Chart"
	}
	return "List"
}
