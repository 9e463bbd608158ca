package rules

import "errors"

var (
	// ErrInvalidConfiguration indicates malformed rule or workspace data: an
	// unknown rule kind, a boundary rule without layers, or an edge naming an
	// unregistered project.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
