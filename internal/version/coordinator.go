package version

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/tessera-platform/tessera/internal/graph"
	"github.com/tessera-platform/tessera/internal/semver"
	"github.com/tessera-platform/tessera/internal/workspace"
)

// Coordinator tracks the current version and declared constraints of every
// registered project, validates and applies version updates, and builds
// multi-project update plans.
//
// It wraps a dependency graph for reverse-reachability queries only. Version
// and constraint state is owned by the coordinator, independent of the graph:
// mutating the graph after construction does not perturb registered versions,
// and updating a version does not touch the graph.
type Coordinator struct {
	graph *graph.Graph
	log   logr.Logger

	order       []string
	projects    map[string]workspace.Project
	versions    map[string]semver.Version
	constraints map[string][]semver.Constraint
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger routes the coordinator's logging through log. The default
// discards everything.
func WithLogger(log logr.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// NewCoordinator returns a coordinator over g with no registered projects.
func NewCoordinator(g *graph.Graph, opts ...Option) *Coordinator {
	c := &Coordinator{
		graph:       g,
		log:         logr.Discard(),
		projects:    make(map[string]workspace.Project),
		versions:    make(map[string]semver.Version),
		constraints: make(map[string][]semver.Constraint),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterProject records p's current version. Re-registering an existing name
// overwrites the stored version with the project's current value. The
// project's version string must parse.
func (c *Coordinator) RegisterProject(p workspace.Project) error {
	v, err := semver.ParseVersion(p.Version)
	if err != nil {
		return fmt.Errorf("register project %q: %w", p.Name, err)
	}
	if _, exists := c.projects[p.Name]; !exists {
		c.order = append(c.order, p.Name)
	}
	c.projects[p.Name] = p
	c.versions[p.Name] = v
	return nil
}

// RegisterConstraint appends a constraint to name's constraint list. Lists
// start empty, so no prior project registration is required; duplicates are
// kept in registration order. Unrecognized constraint operators are rejected
// here rather than silently accepted.
func (c *Coordinator) RegisterConstraint(name, raw string) error {
	constraint, err := semver.ParseConstraint(raw)
	if err != nil {
		return fmt.Errorf("register constraint for %q: %w", name, err)
	}
	c.constraints[name] = append(c.constraints[name], constraint)
	return nil
}

// Constraints returns every constraint registered for name, as written, in
// registration order. Unknown names yield an empty slice.
func (c *Coordinator) Constraints(name string) []string {
	out := make([]string, 0, len(c.constraints[name]))
	for _, con := range c.constraints[name] {
		out = append(out, con.String())
	}
	return out
}

// Version returns the stored version string for name, reporting false when the
// project was never registered.
func (c *Coordinator) Version(name string) (string, bool) {
	v, ok := c.versions[name]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// AllProjects returns every registered project in registration order, each
// carrying its currently stored version.
func (c *Coordinator) AllProjects() []workspace.Project {
	out := make([]workspace.Project, 0, len(c.order))
	for _, name := range c.order {
		p := c.projects[name]
		p.Version = c.versions[name].String()
		out = append(out, p)
	}
	return out
}

// ValidateVersionUpdate checks whether name may move to newVersion. It fails
// with graph.ErrUnknownProject for unregistered projects,
// semver.ErrInvalidVersion for unparseable versions, and ErrIncompatibleVersion
// when any registered constraint does not admit the new version. A project
// with zero constraints admits any parseable version.
func (c *Coordinator) ValidateVersionUpdate(name, newVersion string) error {
	if _, ok := c.versions[name]; !ok {
		return fmt.Errorf("%w: %q", graph.ErrUnknownProject, name)
	}
	v, err := semver.ParseVersion(newVersion)
	if err != nil {
		return err
	}
	for _, con := range c.constraints[name] {
		if !semver.Satisfies(v, con) {
			return fmt.Errorf("%w: %q does not satisfy %q for project %q",
				ErrIncompatibleVersion, newVersion, con.String(), name)
		}
	}
	return nil
}

// UpdateVersion validates and applies one version update. Precondition
// failures (unknown project, malformed version, constraint incompatibility)
// are returned as hard errors and leave the stored version unchanged; the
// result's Err field is reserved for post-application inconsistencies and is
// empty on every success path.
func (c *Coordinator) UpdateVersion(name, newVersion string) (UpdateResult, error) {
	if err := c.ValidateVersionUpdate(name, newVersion); err != nil {
		updatesRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return UpdateResult{}, err
	}

	old := c.versions[name]
	c.versions[name] = semver.MustParseVersion(newVersion)
	updatesAppliedTotal.Inc()
	c.log.V(1).Info("version updated", "project", name, "from", old.String(), "to", newVersion)

	return UpdateResult{
		Project:    name,
		OldVersion: old.String(),
		NewVersion: c.versions[name].String(),
		Success:    true,
	}, nil
}

// IsBreakingChange reports whether moving name to candidate crosses a major
// version boundary, in either direction. Equal-major minor/patch movement is
// never breaking. Constraint compatibility is deliberately not consulted, so
// callers can block on ValidateVersionUpdate while only warning on this.
func (c *Coordinator) IsBreakingChange(name, candidate string) (bool, error) {
	current, ok := c.versions[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", graph.ErrUnknownProject, name)
	}
	v, err := semver.ParseVersion(candidate)
	if err != nil {
		return false, err
	}
	return v.Major() != current.Major(), nil
}

// PlanUpdates builds an update plan from (project, target version) pairs. The
// plan is invalid, with a per-entry reason, when any pair names an
// unregistered project or an unparseable version; constraint compatibility is
// a separate concern and never affects plan validity. Business-rule problems
// never fail the call itself.
func (c *Coordinator) PlanUpdates(requests []UpdateRequest) (UpdatePlan, error) {
	plan := UpdatePlan{Valid: true}
	for _, req := range requests {
		entry := PlannedUpdate{Project: req.Project, TargetVersion: req.TargetVersion}
		if _, ok := c.versions[req.Project]; !ok {
			entry.Reason = fmt.Sprintf("unknown project %q", req.Project)
		} else if _, err := semver.ParseVersion(req.TargetVersion); err != nil {
			entry.Reason = fmt.Sprintf("invalid version %q", req.TargetVersion)
		}
		if entry.Reason != "" {
			plan.Valid = false
		}
		plan.Updates = append(plan.Updates, entry)
	}
	plansBuiltTotal.Inc()
	return plan, nil
}

// AffectedProjects returns every transitive dependent of name in the wrapped
// graph: the projects whose build or behavior a version change could reach.
// Unknown and leaf projects yield an empty slice; this never errors.
func (c *Coordinator) AffectedProjects(name string) []workspace.Project {
	var out []workspace.Project
	seen := map[string]bool{name: true}
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range c.graph.DependentsOf(current) {
			if seen[dep.Name] {
				continue
			}
			seen[dep.Name] = true
			out = append(out, dep)
			queue = append(queue, dep.Name)
		}
	}
	if out == nil {
		out = []workspace.Project{}
	}
	return out
}

// Clear drops every registered project, version, and constraint. The wrapped
// graph is untouched.
func (c *Coordinator) Clear() {
	c.order = nil
	c.projects = make(map[string]workspace.Project)
	c.versions = make(map[string]semver.Version)
	c.constraints = make(map[string][]semver.Constraint)
}
