package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a plain major.minor.patch semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3, restricted to
// bare triples: prerelease and build metadata are rejected at parse time, so
// formatting a parsed version always reproduces the canonical input string.
type Version struct {
	v *mm.Version
}

// Op is a constraint operator. Exactly three forms are recognized; anything
// else is a configuration error, not a silently widened range.
type Op string

const (
	OpCaret      Op = "^"
	OpTilde      Op = "~"
	OpCompareGTE Op = ">="
)

// Constraint is one declared version requirement: an operator applied to a
// declared version, e.g. "^1.2.0".
type Constraint struct {
	op       Op
	declared Version
	raw      string
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.StrictNewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, fmt.Errorf("%w: %q: prerelease/build metadata not supported", ErrInvalidVersion, raw)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) Major() uint64 { return v.v.Major() }
func (v Version) Minor() uint64 { return v.v.Minor() }
func (v Version) Patch() uint64 { return v.v.Patch() }

// String formats the version as canonical "major.minor.patch".
func (v Version) String() string {
	if v.v == nil {
		return "0.0.0"
	}
	return v.v.String()
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// ParseConstraint parses one of the three supported constraint forms:
// caret ("^1.2.3"), tilde ("~1.2.3"), or comparison (">=1.2.3").
func ParseConstraint(raw string) (Constraint, error) {
	trimmed := strings.TrimSpace(raw)

	var op Op
	var rest string
	switch {
	case strings.HasPrefix(trimmed, string(OpCompareGTE)):
		op, rest = OpCompareGTE, trimmed[len(OpCompareGTE):]
	case strings.HasPrefix(trimmed, string(OpCaret)):
		op, rest = OpCaret, trimmed[len(OpCaret):]
	case strings.HasPrefix(trimmed, string(OpTilde)):
		op, rest = OpTilde, trimmed[len(OpTilde):]
	default:
		return Constraint{}, fmt.Errorf("%w: %q: unrecognized operator", ErrInvalidConstraint, raw)
	}

	declared, err := ParseVersion(rest)
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: %q: %v", ErrInvalidConstraint, raw, err)
	}
	return Constraint{op: op, declared: declared, raw: trimmed}, nil
}

func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Constraint) Op() Op { return c.op }

// String returns the constraint as written (whitespace-trimmed).
func (c Constraint) String() string { return c.raw }

// Satisfies reports whether v is admitted by c:
//
//	^X.Y.Z  same major as declared, and v >= declared
//	~X.Y.Z  same major and minor as declared, and v >= declared
//	>=X.Y.Z v >= declared
func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.declared.v == nil {
		return false
	}
	switch c.op {
	case OpCaret:
		return v.Major() == c.declared.Major() && Compare(v, c.declared) >= 0
	case OpTilde:
		return v.Major() == c.declared.Major() && v.Minor() == c.declared.Minor() && Compare(v, c.declared) >= 0
	case OpCompareGTE:
		return Compare(v, c.declared) >= 0
	}
	return false
}
