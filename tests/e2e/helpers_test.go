package e2e_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
	buildOut  []byte
)

// gantryBinary builds the gantry binary once per test run and returns its
// path.
func gantryBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "gantry-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "gantry")
		build := exec.Command("go", "build", "-o", binPath, "./cmd/gantry")
		build.Dir = projectRoot()
		build.Env = append(os.Environ(), "CGO_ENABLED=0")
		buildOut, buildErr = build.CombinedOutput()
	})
	require.NoError(t, buildErr, "building gantry: %s", string(buildOut))
	return binPath
}

// testProject is an isolated working directory driven through the gantry
// binary.
type testProject struct {
	Dir        string
	BinaryPath string
	t          *testing.T
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping E2E test in short mode")
	}
	return &testProject{Dir: t.TempDir(), BinaryPath: gantryBinary(t), t: t}
}

// newFileProject scaffolds the bundled file-source sample project.
func newFileProject(t *testing.T) *testProject {
	t.Helper()
	tp := newTestProject(t)
	tp.runExpectSuccess("init", "file", "--name", "Apollo")
	return tp
}

// projectRoot returns the repository root: two directories above this file.
func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

// writeConfig writes content to gantry.toml in tp.Dir.
func (tp *testProject) writeConfig(content string) {
	tp.t.Helper()
	err := os.WriteFile(filepath.Join(tp.Dir, "gantry.toml"), []byte(content), 0o644)
	require.NoError(tp.t, err)
}

// run creates an exec.Cmd for gantry with a clean GANTRY_* environment.
func (tp *testProject) run(args ...string) *exec.Cmd {
	cmd := exec.Command(tp.BinaryPath, args...)
	cmd.Dir = tp.Dir
	env := make([]string, 0, len(os.Environ())+1)
	for _, kv := range os.Environ() {
		if len(kv) >= 7 && kv[:7] == "GANTRY_" {
			continue
		}
		env = append(env, kv)
	}
	cmd.Env = append(env, "NO_COLOR=1")
	return cmd
}

// runStdout runs gantry, asserts exit code 0 and returns stdout only.
func (tp *testProject) runStdout(args ...string) string {
	tp.t.Helper()
	cmd := tp.run(args...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		tp.t.Fatalf("gantry %v failed: %v\n%s", args, err, string(exitErr.Stderr))
	}
	require.NoError(tp.t, err)
	return string(out)
}

// runExpectSuccess runs gantry and asserts exit code 0. Returns combined
// stdout and stderr.
func (tp *testProject) runExpectSuccess(args ...string) string {
	tp.t.Helper()
	out, err := tp.run(args...).CombinedOutput()
	require.NoError(tp.t, err, "gantry %v failed:\n%s", args, string(out))
	return string(out)
}

// runExpectFailure runs gantry and asserts a non-zero exit code. Returns the
// combined output and the exit code.
func (tp *testProject) runExpectFailure(args ...string) (string, int) {
	tp.t.Helper()
	out, err := tp.run(args...).CombinedOutput()
	require.Error(tp.t, err, "gantry %v expected to fail but succeeded:\n%s", args, string(out))
	var exitErr *exec.ExitError
	require.True(tp.t, errors.As(err, &exitErr), "expected *exec.ExitError, got %T: %v", err, err)
	return string(out), exitErr.ExitCode()
}
