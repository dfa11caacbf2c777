package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/config"
)

// ---- helpers ----------------------------------------------------------------

// testdataPath returns the absolute path of a file in the repository's
// testdata directory. Call it before changing directory.
func testdataPath(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return p
}

// writeConfig writes a gantry.toml into dir and returns its path.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ---- registration -----------------------------------------------------------

func TestConfigCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range configCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["debug"])
	assert.True(t, names["validate"])
	assert.Equal(t, configCmd, configDebugCmd.Parent())
}

func TestConfigCmd_NoSubcommandShowsHelp(t *testing.T) {
	resetRootCmd(t)

	out, _, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "debug")
	assert.Contains(t, out, "validate")
}

// ---- debug ------------------------------------------------------------------

func TestConfigDebugCmd_DefaultsOnly(t *testing.T) {
	resetRootCmd(t)
	chdirTemp(t)

	out, _, err := execute(t, "--no-color", "config", "debug")
	require.NoError(t, err)

	assert.Contains(t, out, "Configuration Debug")
	assert.Contains(t, out, "Config file: none found")
	for _, section := range []string{"[project]", "[source]", "[view]", "[filters]", "[server]"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, `"`+config.DefaultAPIURL+`"`)
	assert.Contains(t, out, "(source: default)")
	assert.NotContains(t, out, "(source: file)")
}

func TestConfigDebugCmd_WithConfigFile(t *testing.T) {
	resetRootCmd(t)
	full := testdataPath(t, "valid-full.toml")

	out, _, err := execute(t, "--no-color", "--config", full, "config", "debug")
	require.NoError(t, err)

	assert.Contains(t, out, "Config file: "+full)
	assert.Contains(t, out, `"Apollo"`)
	assert.Contains(t, out, `"https://gantt.example.com/api/v1"`)
	assert.Contains(t, out, "1048576 (1.0 MiB)")
	assert.Contains(t, out, `"0.0.0.0:9090"`)
	assert.Contains(t, out, "(source: file)")
}

func TestConfigDebugCmd_FindsFileUpward(t *testing.T) {
	resetRootCmd(t)
	dir := chdirTemp(t)
	writeConfig(t, dir, "[project]\nid = \"9\"\nname = \"Found\"\n")
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.Chdir(sub))

	out, _, err := execute(t, "--no-color", "config", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, `"Found"`)
}

func TestConfigDebugCmd_EnvAndFlagSources(t *testing.T) {
	resetRootCmd(t)
	chdirTemp(t)
	t.Setenv(config.EnvProjectID, "from-env")

	out, _, err := execute(t, "--no-color", "--api-url", "http://cli:1/api", "config", "debug")
	require.NoError(t, err)

	assert.Contains(t, out, `"from-env"`)
	assert.Contains(t, out, "(source: env)")
	assert.Contains(t, out, `"http://cli:1/api"`)
	assert.Contains(t, out, "(source: cli)")
}

func TestConfigDebugCmd_MissingExplicitConfig(t *testing.T) {
	resetRootCmd(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "config", "debug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestConfigDebugCmd_RejectsExtraArgs(t *testing.T) {
	resetRootCmd(t)

	_, _, err := execute(t, "config", "debug", "extra")
	assert.Error(t, err)
}

// ---- validate ---------------------------------------------------------------

func TestConfigValidateCmd(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wantErr  bool
		contains []string
	}{
		{
			name:     "valid full",
			file:     "valid-full.toml",
			contains: []string{"No issues found."},
		},
		{
			name:     "valid partial",
			file:     "valid-partial.toml",
			contains: []string{"No issues found."},
		},
		{
			name:    "invalid values",
			file:    "invalid-values.toml",
			wantErr: true,
			contains: []string{
				"Errors:",
				"[source.kind]",
				"[source.timeout]",
				"[source.cache_ttl]",
				"[view.default]",
				"[view.chart_width]",
				"[filters.status]",
				"[server.addr]",
			},
		},
		{
			name:     "unknown keys",
			file:     "unknown-keys.toml",
			contains: []string{"Warnings:", "[project.colour]", "[source.retries]", "0 error(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRootCmd(t)

			out, _, err := execute(t, "--no-color", "--config", testdataPath(t, tt.file), "config", "validate")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "error(s)")
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, "Configuration Validation")
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConfigValidateCmd_SyntaxError(t *testing.T) {
	resetRootCmd(t)

	_, _, err := execute(t, "--config", testdataPath(t, "invalid-syntax.toml"), "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

// ---- printers ---------------------------------------------------------------

func TestPrintValidationResult(t *testing.T) {
	tests := []struct {
		name     string
		result   *config.ValidationResult
		contains []string
		absent   []string
	}{
		{
			name:     "no issues",
			result:   &config.ValidationResult{},
			contains: []string{"No issues found."},
			absent:   []string{"Errors:", "Warnings:"},
		},
		{
			name: "errors and warnings",
			result: &config.ValidationResult{Issues: []config.ValidationIssue{
				{Severity: config.SeverityError, Field: "source.kind", Message: "bad kind"},
				{Severity: config.SeverityWarning, Field: "legacy", Message: "unknown configuration key"},
			}},
			contains: []string{"Errors:", "[source.kind] bad kind", "Warnings:", "[legacy]", "1 error(s), 1 warning(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)

			printValidationResult(cmd, tt.result)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestFmtHelpers(t *testing.T) {
	assert.Equal(t, `"abc"`, fmtStr("abc"))
	assert.Equal(t, `""`, fmtStr(""))
	assert.Equal(t, "0", fmtBytes(0))
	assert.Equal(t, "2048 (2.0 KiB)", fmtBytes(2048))
}

func TestSourceStyle_AllSources(t *testing.T) {
	for _, src := range []config.ConfigSource{config.SourceDefault, config.SourceFile, config.SourceEnv, config.SourceCLI} {
		assert.NotEmpty(t, sourceStyle(src).Render("x"), "style for %s", src)
	}
}

// ---- loadAndResolveConfig ---------------------------------------------------

func TestLoadAndResolveConfig(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		resetRootCmd(t)
		chdirTemp(t)

		rc, meta, err := loadAndResolveConfig(&config.CLIOverrides{})
		require.NoError(t, err)
		assert.Empty(t, rc.Path)
		assert.Nil(t, meta)
		assert.Equal(t, config.DefaultServerAddr, rc.Config.Server.Addr)
	})

	t.Run("explicit flag path", func(t *testing.T) {
		resetRootCmd(t)
		flagConfig = testdataPath(t, "valid-partial.toml")

		rc, meta, err := loadAndResolveConfig(&config.CLIOverrides{})
		require.NoError(t, err)
		assert.Equal(t, flagConfig, rc.Path)
		assert.NotNil(t, meta)
		assert.Equal(t, "7", rc.Config.Project.ID)
	})

	t.Run("overrides win", func(t *testing.T) {
		resetRootCmd(t)
		flagConfig = testdataPath(t, "valid-full.toml")
		id := "99"

		rc, _, err := loadAndResolveConfig(&config.CLIOverrides{ProjectID: &id})
		require.NoError(t, err)
		assert.Equal(t, "99", rc.Config.Project.ID)
		assert.Equal(t, config.SourceCLI, rc.Sources["project.id"])
	})
}
