// Package testutil provides test utilities and helpers for changelog tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	// changelogBinaryPath caches the built changelog binary path.
	changelogBinaryPath string
	changelogBuildOnce  sync.Once
	changelogBuildErr   error
)

// E2EEnv runs the built changelog binary against a throwaway repository with
// an environment stripped of CHANGELOG_* overrides.
type E2EEnv struct {
	t      *testing.T
	binary string
	// Repo is the repository the binary runs in.
	Repo *GitRepo
	// Env holds extra KEY=VALUE entries passed to the binary.
	Env []string
}

// CommandResult captures the result of running a changelog command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv builds the binary once per test process and creates a fresh
// repository for this test.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	changelogBuildOnce.Do(func() {
		changelogBinaryPath, changelogBuildErr = buildChangelog()
	})
	if changelogBuildErr != nil {
		t.Fatalf("building changelog binary: %v", changelogBuildErr)
	}

	return &E2EEnv{
		t:      t,
		binary: changelogBinaryPath,
		Repo:   NewGitRepo(t),
	}
}

func buildChangelog() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "changelog-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "changelog")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/changelog")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("building changelog: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// Run executes the changelog binary in the repository directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()
	return e.RunIn(e.Repo.Dir, args...)
}

// RunIn executes the changelog binary in dir.
func (e *E2EEnv) RunIn(dir string, args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = dir
	cmd.Env = e.isolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}

	return result
}

// ReadFile returns a file from the repository directory.
func (e *E2EEnv) ReadFile(name string) string {
	e.t.Helper()

	data, err := os.ReadFile(filepath.Join(e.Repo.Dir, name))
	if err != nil {
		e.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// isolatedEnv drops CHANGELOG_* variables from the inherited environment so
// a developer's settings never leak into assertions.
func (e *E2EEnv) isolatedEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "CHANGELOG_") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, e.Env...)
}
