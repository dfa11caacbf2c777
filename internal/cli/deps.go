package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/config"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/source"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// errNoProject is returned when neither an argument nor the configuration
// names a project.
var errNoProject = errors.New("no project selected: pass a project id or set [project].id in gantry.toml")

// filterFlags holds the filter criteria flags shared by tasks, stats and
// dashboard. Unset flags fall back to the [filters] section.
type filterFlags struct {
	Search   string
	Status   string
	Progress string
	From     string
	To       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.Search, "search", "", "Case-insensitive substring of the task name")
	fl.StringVar(&f.Status, "status", "", "Task status: NOT_STARTED, IN_PROGRESS, COMPLETED, ON_HOLD, CANCELLED")
	fl.StringVar(&f.Progress, "progress", "", "Progress bucket: 0, 1-25, 26-50, 51-75, 76-99, 100")
	fl.StringVar(&f.From, "from", "", "Only tasks starting on or after this date (YYYY-MM-DD)")
	fl.StringVar(&f.To, "to", "", "Only tasks ending on or before this date (YYYY-MM-DD)")
}

// apply copies the flags the user set into o.
func (f *filterFlags) apply(cmd *cobra.Command, o *config.CLIOverrides) {
	fl := cmd.Flags()
	if fl.Changed("search") {
		o.Search = &f.Search
	}
	if fl.Changed("status") {
		status := strings.ToUpper(strings.TrimSpace(f.Status))
		o.Status = &status
	}
	if fl.Changed("progress") {
		o.Progress = &f.Progress
	}
	if fl.Changed("from") {
		o.DateFrom = &f.From
	}
	if fl.Changed("to") {
		o.DateTo = &f.To
	}
}

// baseOverrides returns the overrides carried by the global flags and the
// optional project argument.
func baseOverrides(args []string) *config.CLIOverrides {
	o := &config.CLIOverrides{}
	if flagSource != "" {
		o.SourceKind = &flagSource
	}
	if flagAPIURL != "" {
		o.APIURL = &flagAPIURL
	}
	if flagTasksGlob != "" {
		o.TasksGlob = &flagTasksGlob
	}
	if len(args) > 0 && args[0] != "" {
		id := args[0]
		o.ProjectID = &id
	}
	return o
}

// commandEnv is the resolved configuration and source a data command runs
// against.
type commandEnv struct {
	Resolved  *config.ResolvedConfig
	Source    source.Source
	ProjectID string
	Criteria  task.FilterCriteria
}

// Close releases the source's resources.
func (e *commandEnv) Close() {
	if c, ok := e.Source.(interface{ Close() }); ok {
		c.Close()
	}
}

// prepareCommand resolves configuration for a data command, validates the
// filter criteria and builds the source. Each extra function may set
// command-specific overrides before resolution.
func prepareCommand(cmd *cobra.Command, args []string, filters *filterFlags, extra ...func(*config.CLIOverrides)) (*commandEnv, error) {
	overrides := baseOverrides(args)
	if filters != nil {
		filters.apply(cmd, overrides)
	}
	for _, fn := range extra {
		fn(overrides)
	}

	resolved, _, err := loadAndResolveConfig(overrides)
	if err != nil {
		return nil, err
	}
	cfg := resolved.Config

	if cfg.Project.ID == "" {
		return nil, errNoProject
	}

	criteria := cfg.Filters.Criteria()
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	src, err := buildSource(resolved)
	if err != nil {
		return nil, err
	}

	return &commandEnv{
		Resolved:  resolved,
		Source:    src,
		ProjectID: cfg.Project.ID,
		Criteria:  criteria,
	}, nil
}

// buildSource creates the configured source stack. Relative file paths are
// taken relative to the directory holding gantry.toml.
func buildSource(rc *config.ResolvedConfig) (source.Source, error) {
	opts := sourceOptions(rc)
	logging.New("cli").Debug("building source",
		"kind", opts.Kind,
		"api_url", opts.APIURL,
		"tasks_glob", opts.TasksGlob,
		"cache_ttl", opts.CacheTTL,
	)

	src, err := source.New(opts)
	if err != nil {
		return nil, err
	}
	if name := rc.Config.Project.Name; name != "" {
		src = &namedSource{Source: src, name: name}
	}
	return src, nil
}

// sourceOptions maps the resolved configuration onto source.Options.
func sourceOptions(rc *config.ResolvedConfig) source.Options {
	s := rc.Config.Source
	baseDir := ""
	if rc.Path != "" {
		baseDir = filepath.Dir(rc.Path)
	}
	return source.Options{
		Kind:          s.Kind,
		APIURL:        s.APIURL,
		Timeout:       s.TimeoutDuration(),
		ProjectFile:   relativeTo(baseDir, s.ProjectFile),
		TasksGlob:     relativeTo(baseDir, s.TasksGlob),
		CacheTTL:      s.CacheTTLDuration(),
		CacheMaxBytes: s.CacheMaxBytes,
	}
}

func relativeTo(baseDir, path string) string {
	if path == "" || baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// namedSource replaces the project display name reported by the wrapped
// source with the configured [project].name.
type namedSource struct {
	source.Source
	name string
}

func (s *namedSource) Load(ctx context.Context, projectID string) (*source.Dataset, error) {
	ds, err := s.Source.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ds.Project.Name = s.name
	return ds, nil
}

// Invalidate forwards to the wrapped source when it caches.
func (s *namedSource) Invalidate(projectID string) {
	if inv, ok := s.Source.(interface{ Invalidate(string) }); ok {
		inv.Invalidate(projectID)
	}
}

// Close forwards to the wrapped source when it holds resources.
func (s *namedSource) Close() {
	if c, ok := s.Source.(interface{ Close() }); ok {
		c.Close()
	}
}
