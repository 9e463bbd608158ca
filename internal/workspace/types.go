package workspace

// Package workspace defines the shared data model the engine components operate
// on: projects, dependency edges, policy rules, and the snapshot that bundles
// them. The types carry yaml/json tags because the config loader and the report
// layer exchange them directly; the engine itself treats them as plain values.

type ProjectStatus string

type DependencyType string

type Severity string

type RuleKind string

const (
	StatusHealthy  ProjectStatus = "healthy"
	StatusWarning  ProjectStatus = "warning"
	StatusCritical ProjectStatus = "critical"
	StatusUnknown  ProjectStatus = "unknown"

	DependencyDirect     DependencyType = "direct"
	DependencyTransitive DependencyType = "transitive"
	DependencyDev        DependencyType = "dev"

	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"

	RuleDependencyConstraint RuleKind = "dependency-constraint"
	RuleNamingConvention     RuleKind = "naming-convention"
	RuleArchitectureBoundary RuleKind = "architecture-boundary"
)

// Project is one member of the workspace. Name is the unique key; the graph and
// the version coordinator both index by it.
type Project struct {
	Path    string        `yaml:"path" json:"path"`
	Name    string        `yaml:"name" json:"name"`
	Type    string        `yaml:"type" json:"type"`
	Version string        `yaml:"version" json:"version"`
	Status  ProjectStatus `yaml:"status,omitempty" json:"status"`
}

// Dependency is a directed edge from the dependent project to the project it
// depends on. Multiple edges between the same pair are permitted (for example
// with differing constraint strings); nothing de-duplicates them.
type Dependency struct {
	From       string         `yaml:"from" json:"from"`
	To         string         `yaml:"to" json:"to"`
	Type       DependencyType `yaml:"type,omitempty" json:"type"`
	Constraint string         `yaml:"constraint,omitempty" json:"constraint,omitempty"`
}

// Rule configures one policy check. Only the fields relevant to the rule's kind
// are consulted: Convention for naming rules, Layers/AllowedDependencies for
// boundary rules.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Kind     RuleKind `yaml:"kind" json:"kind"`
	Enabled  bool     `yaml:"enabled" json:"enabled"`
	Severity Severity `yaml:"severity,omitempty" json:"severity,omitempty"`

	// Convention overrides the workspace-wide naming convention for a
	// naming-convention rule. Empty means inherit.
	Convention string `yaml:"convention,omitempty" json:"convention,omitempty"`

	// Layers maps project name to architectural layer; AllowedDependencies maps
	// a layer to the layers its projects may depend on. Both are only read by
	// architecture-boundary rules.
	Layers              map[string]string   `yaml:"layers,omitempty" json:"layers,omitempty"`
	AllowedDependencies map[string][]string `yaml:"allowedDependencies,omitempty" json:"allowedDependencies,omitempty"`
}

// Workspace is the full snapshot handed to the rules validator: every project,
// every edge, and the configured rule list. The validator reads it, never
// mutates it.
type Workspace struct {
	Name             string       `yaml:"name" json:"name"`
	NamingConvention string       `yaml:"namingConvention,omitempty" json:"namingConvention,omitempty"`
	Projects         []Project    `yaml:"projects" json:"projects"`
	Dependencies     []Dependency `yaml:"dependencies" json:"dependencies"`
	Rules            []Rule       `yaml:"rules" json:"rules"`
}

// Violation records one policy non-compliance. Projects is never empty.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Projects []string `json:"projects"`
	Message  string   `json:"message"`
}

// ValidationResult aggregates the outcome of a full validation pass.
// Passed is true exactly when Violations is empty.
type ValidationResult struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations"`
}
