package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-logr/logr"

	"github.com/tessera-platform/tessera/internal/graph"
	"github.com/tessera-platform/tessera/internal/workspace"
)

// Validator evaluates the configured policy rules over a workspace snapshot.
//
// Non-compliance is data, not failure: a workspace with cycles or bad names
// produces a successful ValidationResult carrying violations. ValidateAll only
// errors on malformed configuration (unknown rule kind, boundary rule without
// a layer map, edges naming unknown projects).
type Validator struct {
	ws  *workspace.Workspace
	log logr.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger routes the validator's logging through log.
func WithLogger(log logr.Logger) Option {
	return func(v *Validator) { v.log = log }
}

// NewValidator returns a validator reading ws. The snapshot is borrowed, never
// mutated.
func NewValidator(ws *workspace.Workspace, opts ...Option) *Validator {
	v := &Validator{ws: ws, log: logr.Discard()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateAll evaluates every enabled rule and aggregates all violations in a
// single pass; it never short-circuits on the first finding. Disabled rules
// contribute nothing even when they would fire.
func (v *Validator) ValidateAll() (workspace.ValidationResult, error) {
	violations := []workspace.Violation{}

	for _, rule := range v.ws.Rules {
		if !rule.Enabled {
			continue
		}
		found, err := v.evaluate(rule)
		if err != nil {
			return workspace.ValidationResult{}, err
		}
		violations = append(violations, found...)
	}

	validationsTotal.Inc()
	countBySeverity(violations)
	v.log.V(1).Info("validation pass complete", "rules", len(v.ws.Rules), "violations", len(violations))

	return workspace.ValidationResult{
		Passed:     len(violations) == 0,
		Violations: violations,
	}, nil
}

func (v *Validator) evaluate(rule workspace.Rule) ([]workspace.Violation, error) {
	switch rule.Kind {
	case workspace.RuleDependencyConstraint:
		return v.checkCycles(rule)
	case workspace.RuleNamingConvention:
		return v.checkNaming(rule)
	case workspace.RuleArchitectureBoundary:
		return v.checkBoundaries(rule)
	}
	return nil, fmt.Errorf("%w: rule %q has unknown kind %q", ErrInvalidConfiguration, rule.Name, rule.Kind)
}

// checkCycles builds the directed graph from the snapshot's edges and reports
// one Critical violation per cycle, naming every project on it.
func (v *Validator) checkCycles(rule workspace.Rule) ([]workspace.Violation, error) {
	g := graph.New(true)
	for _, p := range v.ws.Projects {
		if err := g.AddProject(p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
	}
	for _, d := range v.ws.Dependencies {
		if err := g.AddDependency(d); err != nil {
			return nil, fmt.Errorf("%w: edge %s -> %s: %v", ErrInvalidConfiguration, d.From, d.To, err)
		}
	}

	var out []workspace.Violation
	for _, cycle := range g.DetectCycles() {
		out = append(out, workspace.Violation{
			Rule:     rule.Name,
			Severity: workspace.SeverityCritical,
			Projects: cycle,
			Message:  fmt.Sprintf("circular dependency: %s", strings.Join(cycle, " -> ")),
		})
	}
	return out, nil
}

var conventions = map[string]*regexp.Regexp{
	"kebab-case": regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`),
	"snake_case": regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`),
}

// checkNaming flags every project whose name does not match the configured
// convention. Severity never drops below Warning.
func (v *Validator) checkNaming(rule workspace.Rule) ([]workspace.Violation, error) {
	convention := rule.Convention
	if convention == "" {
		convention = v.ws.NamingConvention
	}
	if convention == "" {
		convention = "kebab-case"
	}
	pattern, ok := conventions[convention]
	if !ok {
		return nil, fmt.Errorf("%w: rule %q: unknown naming convention %q", ErrInvalidConfiguration, rule.Name, convention)
	}

	severity := rule.Severity
	if severity == "" || severity == workspace.SeverityInfo {
		severity = workspace.SeverityWarning
	}

	var out []workspace.Violation
	for _, p := range v.ws.Projects {
		if pattern.MatchString(p.Name) {
			continue
		}
		out = append(out, workspace.Violation{
			Rule:     rule.Name,
			Severity: severity,
			Projects: []string{p.Name},
			Message:  fmt.Sprintf("project name %q does not match %s", p.Name, convention),
		})
	}
	return out, nil
}

// checkBoundaries flags edges that cross layers outside the rule's allowed
// set. Projects without a layer assignment are left alone; same-layer edges
// are always permitted.
func (v *Validator) checkBoundaries(rule workspace.Rule) ([]workspace.Violation, error) {
	if len(rule.Layers) == 0 {
		return nil, fmt.Errorf("%w: rule %q: architecture-boundary rule requires a layer map", ErrInvalidConfiguration, rule.Name)
	}

	severity := rule.Severity
	if severity == "" {
		severity = workspace.SeverityCritical
	}

	var out []workspace.Violation
	for _, d := range v.ws.Dependencies {
		fromLayer, fromOK := rule.Layers[d.From]
		toLayer, toOK := rule.Layers[d.To]
		if !fromOK || !toOK || fromLayer == toLayer {
			continue
		}
		if allowed(rule.AllowedDependencies[fromLayer], toLayer) {
			continue
		}
		out = append(out, workspace.Violation{
			Rule:     rule.Name,
			Severity: severity,
			Projects: []string{d.From, d.To},
			Message: fmt.Sprintf("layer %q may not depend on layer %q (%s -> %s)",
				fromLayer, toLayer, d.From, d.To),
		})
	}
	return out, nil
}

func allowed(layers []string, target string) bool {
	for _, l := range layers {
		if l == target {
			return true
		}
	}
	return false
}
