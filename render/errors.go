package render

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for error classification.
var (
	// ErrRenderFailure matches every failed renderer invocation.
	ErrRenderFailure = errors.New("render failure")

	// ErrConfiguration indicates an invalid or incomplete invoker configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Cause identifies why a render failed.
type Cause string

const (
	// CauseExit means the renderer exited with a non-zero status.
	CauseExit Cause = "exit"

	// CauseTimeout means the renderer exceeded the configured timeout.
	CauseTimeout Cause = "timeout"

	// CauseMissingArtifact means the renderer exited zero but the expected
	// artifact does not exist.
	CauseMissingArtifact Cause = "missing_artifact"

	// CauseInvocation covers any other failure to run the renderer.
	CauseInvocation Cause = "invocation"
)

// Error describes a failed renderer invocation.
type Error struct {
	// Cause classifies the failure.
	Cause Cause

	// Message is the human-readable description surfaced to tool callers.
	Message string

	// Stderr is the renderer's captured error stream, if any.
	Stderr string

	// ExitCode is the renderer's exit status for CauseExit.
	ExitCode int

	// Path is the expected artifact path for CauseMissingArtifact.
	Path string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// Error matches ErrRenderFailure to allow sentinel-style error checking.
func (e *Error) Is(target error) bool {
	return target == ErrRenderFailure
}

func exitError(code int, stderr string) *Error {
	return &Error{
		Cause:    CauseExit,
		Message:  "Rendering failed: " + stderr,
		Stderr:   stderr,
		ExitCode: code,
	}
}

func timeoutError(timeout time.Duration, err error) *Error {
	return &Error{
		Cause:   CauseTimeout,
		Message: "Rendering timed out after " + formatTimeout(timeout),
		Err:     err,
	}
}

// formatTimeout renders whole-second timeouts as "N seconds" and anything
// finer with time.Duration formatting.
func formatTimeout(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int64(d/time.Second))
	}
	return d.String()
}

func missingArtifactError(path string) *Error {
	return &Error{
		Cause:   CauseMissingArtifact,
		Message: "Render completed but output not found at " + path,
		Path:    path,
	}
}

func invocationError(err error) *Error {
	return &Error{
		Cause:   CauseInvocation,
		Message: fmt.Sprintf("Rendering failed unexpectedly: %v", err),
		Err:     err,
	}
}
