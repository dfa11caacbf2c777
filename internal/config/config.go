package config

import (
	"time"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// Config is the top-level configuration structure mapping to gantry.toml.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Source  SourceConfig  `toml:"source"`
	View    ViewConfig    `toml:"view"`
	Filters FiltersConfig `toml:"filters"`
	Server  ServerConfig  `toml:"server"`
}

// ProjectConfig maps to the [project] section in gantry.toml.
type ProjectConfig struct {
	// ID is the project opened when no project argument is given.
	ID string `toml:"id"`
	// Name overrides the display name reported by the source.
	Name string `toml:"name"`
}

// SourceConfig maps to the [source] section in gantry.toml.
type SourceConfig struct {
	Kind          string `toml:"kind"`
	APIURL        string `toml:"api_url"`
	Timeout       string `toml:"timeout"`
	ProjectFile   string `toml:"project_file"`
	TasksGlob     string `toml:"tasks_glob"`
	CacheTTL      string `toml:"cache_ttl"`
	CacheMaxBytes int64  `toml:"cache_max_bytes"`
}

// TimeoutDuration parses Timeout, returning 0 when it is empty or invalid.
func (s SourceConfig) TimeoutDuration() time.Duration {
	return parseDuration(s.Timeout)
}

// CacheTTLDuration parses CacheTTL, returning 0 (cache disabled) when it is
// empty or invalid.
func (s SourceConfig) CacheTTLDuration() time.Duration {
	return parseDuration(s.CacheTTL)
}

// ViewConfig maps to the [view] section in gantry.toml.
type ViewConfig struct {
	Default       string `toml:"default"`
	ToastDuration string `toml:"toast_duration"`
	ChartWidth    int    `toml:"chart_width"`
	// LogFile receives log output while the dashboard owns the terminal.
	LogFile string `toml:"log_file"`
}

// ToastDurationValue parses ToastDuration, returning 0 when it is empty or
// invalid.
func (v ViewConfig) ToastDurationValue() time.Duration {
	return parseDuration(v.ToastDuration)
}

// FiltersConfig maps to the [filters] section in gantry.toml: the criteria
// applied when a project is first loaded.
type FiltersConfig struct {
	Search   string `toml:"search"`
	Status   string `toml:"status"`
	Progress string `toml:"progress"`
	DateFrom string `toml:"date_from"`
	DateTo   string `toml:"date_to"`
}

// ServerConfig maps to the [server] section in gantry.toml.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// Criteria converts the [filters] section into filter criteria.
func (f FiltersConfig) Criteria() task.FilterCriteria {
	return task.FilterCriteria{
		Search:   f.Search,
		Status:   task.TaskStatus(f.Status),
		Progress: task.ProgressBucket(f.Progress),
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
	}
}
