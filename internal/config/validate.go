package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// ValidationSeverity grades a finding.
type ValidationSeverity string

const (
	// SeverityError makes the configuration unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning flags a usable configuration that probably does not do
	// what its author meant.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue is one finding against a gantry.toml key.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted key, e.g. "source.api_url"
	Message  string
}

// ValidationResult collects the findings of Validate in check order.
type ValidationResult struct {
	Issues []ValidationIssue
}

func (vr *ValidationResult) filter(sev ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Errors returns the error findings.
func (vr *ValidationResult) Errors() []ValidationIssue { return vr.filter(SeverityError) }

// Warnings returns the warning findings.
func (vr *ValidationResult) Warnings() []ValidationIssue { return vr.filter(SeverityWarning) }

// HasErrors reports whether the configuration is unusable.
func (vr *ValidationResult) HasErrors() bool { return len(vr.Errors()) > 0 }

// HasWarnings reports whether any warning was recorded.
func (vr *ValidationResult) HasWarnings() bool { return len(vr.Warnings()) > 0 }

// recognizedKinds is the set of valid values for source.kind.
var recognizedKinds = map[string]bool{
	"":     true,
	"http": true,
	"file": true,
}

// recognizedViews is the set of valid values for view.default. "chart" is
// accepted as an alias for "d3".
var recognizedViews = map[string]bool{
	"":      true,
	"basic": true,
	"d3":    true,
	"chart": true,
}

// Validate checks the configuration for correctness and completeness,
// including unknown keys when meta is non-nil. Check HasErrors to decide
// whether the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateSource(vr, &cfg.Source)
	validateView(vr, &cfg.View)
	validateFilters(vr, &cfg.Filters)
	validateServer(vr, &cfg.Server)
	validateUnknownKeys(vr, meta)

	return vr
}

func validateSource(vr *ValidationResult, s *SourceConfig) {
	if !recognizedKinds[s.Kind] {
		addError(vr, "source.kind",
			fmt.Sprintf("unrecognized kind %q; must be one of: http, file", s.Kind))
	}

	switch s.Kind {
	case "", "http":
		if s.APIURL == "" {
			addError(vr, "source.api_url", "must not be empty for the http source")
		} else if u, err := url.Parse(s.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
			addError(vr, "source.api_url", fmt.Sprintf("invalid URL %q", s.APIURL))
		}
	case "file":
		if s.TasksGlob == "" {
			addError(vr, "source.tasks_glob", "must not be empty for the file source")
		} else if !doublestar.ValidatePathPattern(s.TasksGlob) {
			addError(vr, "source.tasks_glob", fmt.Sprintf("invalid glob pattern %q", s.TasksGlob))
		}
		if s.ProjectFile != "" && !strings.Contains(s.ProjectFile, "{id}") {
			if _, err := os.Stat(s.ProjectFile); err != nil {
				addWarning(vr, "source.project_file",
					fmt.Sprintf("file %q does not exist", s.ProjectFile))
			}
		}
	}

	validateDuration(vr, "source.timeout", s.Timeout, false)
	validateDuration(vr, "source.cache_ttl", s.CacheTTL, true)

	if s.CacheMaxBytes < 0 {
		addError(vr, "source.cache_max_bytes", "must not be negative")
	}
}

func validateView(vr *ValidationResult, v *ViewConfig) {
	if !recognizedViews[v.Default] {
		addError(vr, "view.default",
			fmt.Sprintf("unrecognized view %q; must be one of: basic, d3", v.Default))
	}
	validateDuration(vr, "view.toast_duration", v.ToastDuration, true)
	if v.ChartWidth < 0 {
		addError(vr, "view.chart_width", "must not be negative")
	} else if v.ChartWidth > 0 && v.ChartWidth < 10 {
		addWarning(vr, "view.chart_width", fmt.Sprintf("width %d is too narrow to draw bars", v.ChartWidth))
	}
}

// validateFilters reports the first problem with the default criteria. The
// task package names fields the way the API does; they are mapped back to
// their gantry.toml keys here.
func validateFilters(vr *ValidationResult, f *FiltersConfig) {
	err := f.Criteria().Validate()
	if err == nil {
		return
	}
	var ve *task.ValidationError
	if !errors.As(err, &ve) {
		addError(vr, "filters", err.Error())
		return
	}
	field := map[string]string{
		"status":   "filters.status",
		"progress": "filters.progress",
		"dateFrom": "filters.date_from",
		"dateTo":   "filters.date_to",
	}[ve.Field]
	if field == "" {
		field = "filters"
	}
	addError(vr, field, ve.Message)
}

func validateServer(vr *ValidationResult, s *ServerConfig) {
	if s.Addr == "" {
		return
	}
	if _, _, err := net.SplitHostPort(s.Addr); err != nil {
		addError(vr, "server.addr", fmt.Sprintf("invalid listen address %q: %v", s.Addr, err))
	}
}

// validateDuration checks that value parses as a Go duration. Zero is only
// accepted when allowZero is set.
func validateDuration(vr *ValidationResult, field, value string, allowZero bool) {
	if value == "" {
		return
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		addError(vr, field, fmt.Sprintf("invalid duration %q; expected a value like \"10s\"", value))
		return
	}
	if d < 0 || (d == 0 && !allowZero) {
		addError(vr, field, fmt.Sprintf("duration %q must be positive", value))
	}
}

// validateUnknownKeys warns about keys that decoded into no Config field,
// which is usually a typo.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}
	for _, key := range meta.Undecoded() {
		addWarning(vr, key.String(), "unknown configuration key")
	}
}

func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{SeverityError, field, message})
}

func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{SeverityWarning, field, message})
}
