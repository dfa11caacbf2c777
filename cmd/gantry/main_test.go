package main_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRoot returns the absolute path to the project root directory.
func projectRoot(tb testing.TB) string {
	tb.Helper()

	dir, err := os.Getwd()
	if err != nil {
		tb.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			tb.Fatal("could not find project root (no go.mod found in any parent directory)")
		}
		dir = parent
	}
}

// buildBinary compiles ./cmd/gantry into a temp dir with CGO disabled and
// returns the binary path.
func buildBinary(tb testing.TB) string {
	tb.Helper()

	binPath := filepath.Join(tb.TempDir(), "gantry")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/gantry/")
	cmd.Dir = projectRoot(tb)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")

	if out, err := cmd.CombinedOutput(); err != nil {
		tb.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

func TestBuild_Compiles(t *testing.T) {
	binPath := buildBinary(t)

	info, err := os.Stat(binPath)
	require.NoError(t, err, "binary was not created at %s", binPath)
	assert.Greater(t, info.Size(), int64(0), "binary must not be empty")
}

func TestBinary_Version(t *testing.T) {
	binPath := buildBinary(t)

	out, err := exec.Command(binPath, "version").CombinedOutput()
	require.NoError(t, err, "gantry version failed: %s", string(out))
	assert.True(t, strings.HasPrefix(string(out), "gantry v"), "got %q", string(out))
}

func TestBinary_VersionJSON(t *testing.T) {
	binPath := buildBinary(t)

	out, err := exec.Command(binPath, "version", "--json").Output()
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal(out, &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit")
}

func TestBinary_UnknownCommandExitsNonZero(t *testing.T) {
	binPath := buildBinary(t)

	cmd := exec.Command(binPath, "frobnicate")
	out, err := cmd.CombinedOutput()
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "unknown command")
}

func TestBinary_TasksFromFileProject(t *testing.T) {
	binPath := buildBinary(t)
	dir := t.TempDir()

	initCmd := exec.Command(binPath, "init", "file", "--name", "Apollo")
	initCmd.Dir = dir
	out, err := initCmd.CombinedOutput()
	require.NoError(t, err, "gantry init failed: %s", string(out))

	tasksCmd := exec.Command(binPath, "tasks", "--format", "json", "--status", "COMPLETED")
	tasksCmd.Dir = dir
	out, err = tasksCmd.Output()
	require.NoError(t, err)

	var got struct {
		Total int `json:"total"`
		Tasks []struct {
			ID string `json:"id"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, 8, got.Total)
	assert.Len(t, got.Tasks, 2)
}

func TestGoVet_Passes(t *testing.T) {
	cmd := exec.Command("go", "vet", "./...")
	cmd.Dir = projectRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "go vet failed with output: %s", string(output))
}
