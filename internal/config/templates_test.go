package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTemplates(t *testing.T) {
	t.Parallel()
	names, err := ListTemplates()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"file", "http"}, names)
	assert.True(t, TemplateExists(DefaultTemplate))
	assert.False(t, TemplateExists("kanban"))
}

func TestRenderTemplate_HTTP(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	created, err := RenderTemplate("http", dir, TemplateVars{ProjectID: "42", ProjectName: "Apollo", APIURL: "http://x:1/api/v1"}, false)
	require.NoError(t, err)
	require.Len(t, created, 1)

	cfg, md, err := LoadFromFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Empty(t, md.Undecoded())
	assert.Equal(t, "42", cfg.Project.ID)
	assert.Equal(t, "Apollo", cfg.Project.Name)
	assert.Equal(t, "http://x:1/api/v1", cfg.Source.APIURL)
	assert.False(t, Validate(cfg, &md).HasErrors())
}

func TestRenderTemplate_FileSkipsExisting(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	existing := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(existing, []byte("# mine\n"), 0o644))

	created, err := RenderTemplate("file", dir, TemplateVars{ProjectID: "demo", ProjectName: "Demo"}, false)
	require.NoError(t, err)
	assert.NotContains(t, created, existing)
	assert.FileExists(t, filepath.Join(dir, "data", "project.json"))
	assert.FileExists(t, filepath.Join(dir, "data", "tasks", "02-build.json"))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	created, err = RenderTemplate("file", dir, TemplateVars{ProjectID: "demo"}, true)
	require.NoError(t, err)
	assert.Contains(t, created, existing)
}

func TestRenderTemplate_Unknown(t *testing.T) {
	t.Parallel()
	_, err := RenderTemplate("kanban", t.TempDir(), TemplateVars{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `template "kanban" not found`)
}
