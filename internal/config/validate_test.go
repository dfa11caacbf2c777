package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueFields returns the Field of every issue with the given severity.
func issueFields(issues []ValidationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Field)
	}
	return out
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()
	vr := Validate(nil, nil)
	assert.True(t, vr.HasErrors())
}

func TestValidate_InvalidValuesFile(t *testing.T) {
	t.Parallel()
	cfg, md, err := LoadFromFile(testdataPath(t, "invalid-values.toml"))
	require.NoError(t, err)

	vr := Validate(cfg, &md)
	require.True(t, vr.HasErrors())

	fields := issueFields(vr.Errors())
	for _, want := range []string{
		"source.kind",
		"source.timeout",
		"source.cache_ttl",
		"view.default",
		"view.chart_width",
		"filters.status",
		"server.addr",
	} {
		assert.Contains(t, fields, want)
	}
}

func TestValidate_UnknownKeysAreWarnings(t *testing.T) {
	t.Parallel()
	cfg, md, err := LoadFromFile(testdataPath(t, "unknown-keys.toml"))
	require.NoError(t, err)

	vr := Validate(cfg, &md)
	assert.False(t, vr.HasErrors(), "%v", vr.Issues)
	assert.True(t, vr.HasWarnings())
	assert.Contains(t, issueFields(vr.Warnings()), "source.retries")
}

func TestValidate_Source(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "http needs api_url", mutate: func(c *Config) { c.Source.APIURL = "" }, wantField: "source.api_url"},
		{name: "api_url needs scheme and host", mutate: func(c *Config) { c.Source.APIURL = "localhost" }, wantField: "source.api_url"},
		{name: "file needs glob", mutate: func(c *Config) { c.Source.Kind = "file"; c.Source.TasksGlob = "" }, wantField: "source.tasks_glob"},
		{name: "bad glob", mutate: func(c *Config) { c.Source.Kind = "file"; c.Source.TasksGlob = "data/[" }, wantField: "source.tasks_glob"},
		{name: "zero timeout", mutate: func(c *Config) { c.Source.Timeout = "0s" }, wantField: "source.timeout"},
		{name: "negative cache size", mutate: func(c *Config) { c.Source.CacheMaxBytes = -1 }, wantField: "source.cache_max_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaults()
			tt.mutate(cfg)
			vr := Validate(cfg, nil)
			assert.Contains(t, issueFields(vr.Errors()), tt.wantField)
		})
	}
}

func TestValidate_FileSourceMissingProjectFileWarns(t *testing.T) {
	t.Parallel()
	cfg := NewDefaults()
	cfg.Source.Kind = "file"
	cfg.Source.ProjectFile = filepath.Join(t.TempDir(), "missing.json")

	vr := Validate(cfg, nil)
	assert.False(t, vr.HasErrors())
	assert.Contains(t, issueFields(vr.Warnings()), "source.project_file")
}

func TestValidate_FileSourceTemplatedProjectFileNotChecked(t *testing.T) {
	t.Parallel()
	cfg := NewDefaults()
	cfg.Source.Kind = "file"
	cfg.Source.ProjectFile = "data/{id}/project.json"

	vr := Validate(cfg, nil)
	assert.Empty(t, vr.Issues)
}

func TestValidate_FileSourceExistingProjectFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	cfg := NewDefaults()
	cfg.Source.Kind = "file"
	cfg.Source.ProjectFile = path

	vr := Validate(cfg, nil)
	assert.Empty(t, vr.Issues)
}

func TestValidate_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filters   FiltersConfig
		wantField string
	}{
		{name: "unknown status", filters: FiltersConfig{Status: "DONE"}, wantField: "filters.status"},
		{name: "unknown bucket", filters: FiltersConfig{Progress: "10-20"}, wantField: "filters.progress"},
		{name: "bad from", filters: FiltersConfig{DateFrom: "01/02/2024"}, wantField: "filters.date_from"},
		{name: "inverted range", filters: FiltersConfig{DateFrom: "2024-02-01", DateTo: "2024-01-01"}, wantField: "filters.date_to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaults()
			cfg.Filters = tt.filters
			vr := Validate(cfg, nil)
			assert.Equal(t, []string{tt.wantField}, issueFields(vr.Errors()))
		})
	}
}

func TestValidate_View(t *testing.T) {
	t.Parallel()

	cfg := NewDefaults()
	cfg.View.Default = "chart"
	cfg.View.ChartWidth = 5
	cfg.View.ToastDuration = "0s"

	vr := Validate(cfg, nil)
	assert.False(t, vr.HasErrors(), "%v", vr.Issues)
	assert.Equal(t, []string{"view.chart_width"}, issueFields(vr.Warnings()))
}

func TestValidationResult_Partition(t *testing.T) {
	t.Parallel()
	vr := &ValidationResult{}
	addError(vr, "a", "bad")
	addWarning(vr, "b", "meh")

	assert.True(t, vr.HasErrors())
	assert.True(t, vr.HasWarnings())
	assert.Len(t, vr.Errors(), 1)
	assert.Len(t, vr.Warnings(), 1)
	assert.Equal(t, "a", vr.Errors()[0].Field)
	assert.Equal(t, "b", vr.Warnings()[0].Field)
}
