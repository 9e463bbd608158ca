package semver

import "errors"

var (
	// ErrInvalidVersion indicates a version string that is not a bare
	// major.minor.patch triple.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidConstraint indicates a constraint string whose operator is not
	// one of ^, ~, >= or whose version part does not parse.
	ErrInvalidConstraint = errors.New("invalid constraint")
)
