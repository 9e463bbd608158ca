package version

import (
	"errors"

	"github.com/tessera-platform/tessera/internal/graph"
	"github.com/tessera-platform/tessera/internal/semver"
)

var (
	// ErrIncompatibleVersion indicates a version update rejected by a
	// registered constraint.
	ErrIncompatibleVersion = errors.New("incompatible version")
)

func rejectReason(err error) string {
	switch {
	case errors.Is(err, graph.ErrUnknownProject):
		return "unknown_project"
	case errors.Is(err, semver.ErrInvalidVersion):
		return "invalid_version"
	case errors.Is(err, ErrIncompatibleVersion):
		return "incompatible"
	}
	return "other"
}
