package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Command is a process to run.
type Command struct {
	// Path is the executable name or path.
	Path string

	// Args are the arguments, excluding the executable.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Output is the captured result of a finished process.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes renderer processes.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must kill the process when ctx is done and return ctx.Err().
// - Errors: a process that ran and exited non-zero is reported through
//   Output.ExitCode with a nil error; errors are reserved for failures to
//   start or wait on the process.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// waitDelay bounds how long Run waits for output pipes to close after the
// process is killed, so orphaned children cannot hold a timed-out call.
const waitDelay = 2 * time.Second

// ExecRunner runs commands as local subprocesses.
type ExecRunner struct{}

// Run starts the command, waits for it, and captures stdout and stderr.
func (ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
