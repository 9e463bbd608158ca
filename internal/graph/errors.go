package graph

import "errors"

var (
	// ErrDuplicateProject indicates an AddProject call naming an already
	// registered project.
	ErrDuplicateProject = errors.New("duplicate project")

	// ErrUnknownProject indicates an operation referencing a project name that
	// was never registered.
	ErrUnknownProject = errors.New("unknown project")
)
