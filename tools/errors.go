package tools

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/toolscene/project"
	"github.com/jonwraymond/toolscene/render"
)

// Error categories reported by tool calls.
var (
	// ErrNotFound indicates a project or segment identity absent from the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates an unrecognized placement or quality, a
	// blank required field, or arguments that could not be decoded.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates the operation requires at least one segment.
	ErrInvalidState = errors.New("invalid state")

	// ErrRenderFailure covers every renderer failure: non-zero exit, timeout,
	// missing artifact and invocation errors.
	ErrRenderFailure = errors.New("render failure")

	// ErrConfiguration indicates an invalid service configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Error is a categorized tool failure. Message is what callers see.
type Error struct {
	// Kind is one of the category sentinels above.
	Kind error

	// Message is the human-readable description returned to callers.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's category.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func newError(kind error, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func projectNotFound(id string, cause error) *Error {
	return newError(ErrNotFound, cause, "Project with ID %s not found", id)
}

func segmentNotFound(projectID, segmentID string, cause error) *Error {
	return newError(ErrNotFound, cause, "Segment with ID %s not found in project %s", segmentID, projectID)
}

func invalidArgument(cause error, format string, args ...any) *Error {
	return newError(ErrInvalidArgument, cause, format, args...)
}

func noSegments(projectID, action string) *Error {
	return newError(ErrInvalidState, nil, "Project %s has no segments to %s", projectID, action)
}

// renderFailure keeps the invoker's message, which already names the
// sub-cause.
func renderFailure(err error) *Error {
	var rerr *render.Error
	if errors.As(err, &rerr) {
		return &Error{Kind: ErrRenderFailure, Message: rerr.Message, Err: err}
	}
	return newError(ErrRenderFailure, err, "Rendering failed unexpectedly: %v", err)
}

// classify maps lower-level errors onto the tool categories. Errors that are
// already categorized pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, project.ErrSegmentNotFound):
		return &Error{Kind: ErrNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, project.ErrInvalidPlacement), errors.Is(err, project.ErrInvalidQuality):
		return &Error{Kind: ErrInvalidArgument, Message: err.Error(), Err: err}
	case errors.Is(err, render.ErrRenderFailure):
		return renderFailure(err)
	}
	return err
}

// ErrorResponse is the uniform failure payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse converts err into the failure payload.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Error: classify(err).Error()}
}
