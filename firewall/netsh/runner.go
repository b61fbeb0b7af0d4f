package netsh

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Output is the captured result of a process run.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs external processes. A process that ran and exited with a
// non-zero status is not an error; only failing to run it at all is.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Output, error)
}

// ExecRunner runs processes directly with os/exec, without an intermediate
// shell.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run implements the Runner interface.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	configureCmd(cmd, name, args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return nil, err //nolint:wrapcheck // This is wrapped by the caller.
	}

	return out, nil
}
