package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNotInstalled is returned by a Runner when the command does not exist.
var ErrNotInstalled = errors.New("command not installed")

// Runner executes an external command in a directory.
type Runner interface {
	// Run returns the command's output. A non-zero exit status is reported
	// through code, not err.
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, code int, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, int, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", "", 0, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), stderr.String(), 0, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
	default:
		return "", "", 0, fmt.Errorf("run %s: %w", name, err)
	}
}
