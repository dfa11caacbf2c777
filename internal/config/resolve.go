package config

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from gantry.toml.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
// The Config field contains the merged values; Sources tracks where each came from.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "source.api_url"
	Path    string                  // path to the config file used (empty if none)
}

// CLIOverrides captures flag values that can override configuration.
// A nil pointer means "not set"; a pointer to "" overrides to empty.
type CLIOverrides struct {
	ProjectID  *string
	SourceKind *string
	APIURL     *string
	TasksGlob  *string
	View       *string
	ServerAddr *string
	Search     *string
	Status     *string
	Progress   *string
	DateFrom   *string
	DateTo     *string
}

// EnvFunc looks up environment variables. os.LookupEnv in production.
type EnvFunc func(key string) (string, bool)

// Environment variable names recognised by Resolve.
const (
	EnvAPIURL     = "GANTRY_API_URL"
	EnvProjectID  = "GANTRY_PROJECT_ID"
	EnvSource     = "GANTRY_SOURCE"
	EnvView       = "GANTRY_VIEW"
	EnvServerAddr = "GANTRY_SERVER_ADDR"
)

// Resolve merges configuration from all sources in priority order:
// CLI flags > environment variables > config file > defaults.
// fileConfig is nil when no gantry.toml was found.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	// Layer 1: defaults.
	for _, f := range fields(rc.Config) {
		f.set(f.get(defaults), SourceDefault, rc.Sources)
	}
	rc.Config.Source.CacheMaxBytes = defaults.Source.CacheMaxBytes
	rc.Sources["source.cache_max_bytes"] = SourceDefault
	rc.Config.View.ChartWidth = defaults.View.ChartWidth
	rc.Sources["view.chart_width"] = SourceDefault

	// Layer 2: file. Empty strings and zero numbers mean "not set in file".
	if fileConfig != nil {
		for _, f := range fields(rc.Config) {
			f.merge(f.get(fileConfig), SourceFile, rc.Sources)
		}
		if fileConfig.Source.CacheMaxBytes != 0 {
			rc.Config.Source.CacheMaxBytes = fileConfig.Source.CacheMaxBytes
			rc.Sources["source.cache_max_bytes"] = SourceFile
		}
		if fileConfig.View.ChartWidth != 0 {
			rc.Config.View.ChartWidth = fileConfig.View.ChartWidth
			rc.Sources["view.chart_width"] = SourceFile
		}
	}

	// Layer 3: environment.
	c := rc.Config
	envString(envFn, EnvAPIURL, &c.Source.APIURL, "source.api_url", rc.Sources)
	envString(envFn, EnvProjectID, &c.Project.ID, "project.id", rc.Sources)
	envString(envFn, EnvSource, &c.Source.Kind, "source.kind", rc.Sources)
	envString(envFn, EnvView, &c.View.Default, "view.default", rc.Sources)
	envString(envFn, EnvServerAddr, &c.Server.Addr, "server.addr", rc.Sources)

	// Layer 4: CLI overrides.
	cliString(overrides.ProjectID, &c.Project.ID, "project.id", rc.Sources)
	cliString(overrides.SourceKind, &c.Source.Kind, "source.kind", rc.Sources)
	cliString(overrides.APIURL, &c.Source.APIURL, "source.api_url", rc.Sources)
	cliString(overrides.TasksGlob, &c.Source.TasksGlob, "source.tasks_glob", rc.Sources)
	cliString(overrides.View, &c.View.Default, "view.default", rc.Sources)
	cliString(overrides.ServerAddr, &c.Server.Addr, "server.addr", rc.Sources)
	cliString(overrides.Search, &c.Filters.Search, "filters.search", rc.Sources)
	cliString(overrides.Status, &c.Filters.Status, "filters.status", rc.Sources)
	cliString(overrides.Progress, &c.Filters.Progress, "filters.progress", rc.Sources)
	cliString(overrides.DateFrom, &c.Filters.DateFrom, "filters.date_from", rc.Sources)
	cliString(overrides.DateTo, &c.Filters.DateTo, "filters.date_to", rc.Sources)

	return rc
}

// stringField binds a dotted config key to a string field of a Config.
type stringField struct {
	path   string
	target *string
	get    func(*Config) string
}

func (f stringField) set(value string, source ConfigSource, sources map[string]ConfigSource) {
	setString(f.target, value, f.path, source, sources)
}

func (f stringField) merge(value string, source ConfigSource, sources map[string]ConfigSource) {
	mergeString(f.target, value, f.path, source, sources)
}

// fields lists every string-valued key of dst in gantry.toml order.
func fields(dst *Config) []stringField {
	return []stringField{
		{"project.id", &dst.Project.ID, func(c *Config) string { return c.Project.ID }},
		{"project.name", &dst.Project.Name, func(c *Config) string { return c.Project.Name }},
		{"source.kind", &dst.Source.Kind, func(c *Config) string { return c.Source.Kind }},
		{"source.api_url", &dst.Source.APIURL, func(c *Config) string { return c.Source.APIURL }},
		{"source.timeout", &dst.Source.Timeout, func(c *Config) string { return c.Source.Timeout }},
		{"source.project_file", &dst.Source.ProjectFile, func(c *Config) string { return c.Source.ProjectFile }},
		{"source.tasks_glob", &dst.Source.TasksGlob, func(c *Config) string { return c.Source.TasksGlob }},
		{"source.cache_ttl", &dst.Source.CacheTTL, func(c *Config) string { return c.Source.CacheTTL }},
		{"view.default", &dst.View.Default, func(c *Config) string { return c.View.Default }},
		{"view.toast_duration", &dst.View.ToastDuration, func(c *Config) string { return c.View.ToastDuration }},
		{"view.log_file", &dst.View.LogFile, func(c *Config) string { return c.View.LogFile }},
		{"filters.search", &dst.Filters.Search, func(c *Config) string { return c.Filters.Search }},
		{"filters.status", &dst.Filters.Status, func(c *Config) string { return c.Filters.Status }},
		{"filters.progress", &dst.Filters.Progress, func(c *Config) string { return c.Filters.Progress }},
		{"filters.date_from", &dst.Filters.DateFrom, func(c *Config) string { return c.Filters.DateFrom }},
		{"filters.date_to", &dst.Filters.DateTo, func(c *Config) string { return c.Filters.DateTo }},
		{"server.addr", &dst.Server.Addr, func(c *Config) string { return c.Server.Addr }},
	}
}

func envString(envFn EnvFunc, key string, target *string, path string, sources map[string]ConfigSource) {
	if val, ok := envFn(key); ok {
		*target = val
		sources[path] = SourceEnv
	}
}

func cliString(override *string, target *string, path string, sources map[string]ConfigSource) {
	if override != nil {
		*target = *override
		sources[path] = SourceCLI
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty (non-zero string).
// For file-layer merging, an empty string in the file means "not set in file",
// so it does not override the default.
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}
