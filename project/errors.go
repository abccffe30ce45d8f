package project

import "errors"

// Sentinel errors for project and segment operations.
var (
	// ErrProjectNotFound indicates no project carries the requested ID.
	ErrProjectNotFound = errors.New("project not found")

	// ErrSegmentNotFound indicates no segment in the project carries the
	// requested ID.
	ErrSegmentNotFound = errors.New("segment not found")

	// ErrProjectExists is returned when creating a project whose ID is
	// already present in the store.
	ErrProjectExists = errors.New("project already exists")

	// ErrInvalidPlacement indicates a placement tag outside the recognized set.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrInvalidQuality indicates a quality level outside the recognized set.
	ErrInvalidQuality = errors.New("invalid quality")
)
