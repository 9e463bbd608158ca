package rules

import (
	"errors"
	"testing"

	"github.com/tessera-platform/tessera/internal/workspace"
)

func project(name string) workspace.Project {
	return workspace.Project{
		Name:    name,
		Path:    "projects/" + name,
		Type:    "library",
		Version: "1.0.0",
		Status:  workspace.StatusHealthy,
	}
}

func edge(from, to string) workspace.Dependency {
	return workspace.Dependency{From: from, To: to, Type: workspace.DependencyDirect}
}

func cycleRule() workspace.Rule {
	return workspace.Rule{
		Name:    "no-circular-dependencies",
		Kind:    workspace.RuleDependencyConstraint,
		Enabled: true,
	}
}

func namingRule() workspace.Rule {
	return workspace.Rule{
		Name:    "naming-convention",
		Kind:    workspace.RuleNamingConvention,
		Enabled: true,
	}
}

func TestValidateAllPassesOnCleanWorkspace(t *testing.T) {
	ws := &workspace.Workspace{
		Name: "clean",
		Projects: []workspace.Project{
			project("core"), project("storage"), project("api"),
		},
		Dependencies: []workspace.Dependency{
			edge("storage", "core"), edge("api", "core"), edge("api", "storage"),
		},
		Rules: []workspace.Rule{cycleRule(), namingRule()},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if !result.Passed || len(result.Violations) != 0 {
		t.Fatalf("expected clean pass, got %+v", result)
	}
}

// Scenario: core and cli depending on each other produces one Critical
// violation naming exactly those two projects.
func TestCircularDependencyViolation(t *testing.T) {
	ws := &workspace.Workspace{
		Name: "cyclic",
		Projects: []workspace.Project{
			project("core"), project("storage"), project("api"), project("cli"),
		},
		Dependencies: []workspace.Dependency{
			edge("storage", "core"),
			edge("api", "core"),
			edge("api", "storage"),
			edge("cli", "core"),
			edge("core", "cli"),
		},
		Rules: []workspace.Rule{cycleRule()},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected validation failure")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", result.Violations)
	}

	v := result.Violations[0]
	if v.Severity != workspace.SeverityCritical {
		t.Fatalf("cycle violations must be critical, got %s", v.Severity)
	}
	members := map[string]bool{}
	for _, name := range v.Projects {
		members[name] = true
	}
	if len(members) != 2 || !members["core"] || !members["cli"] {
		t.Fatalf("expected cycle members {core, cli}, got %v", v.Projects)
	}
}

func TestNamingConventionViolations(t *testing.T) {
	ws := &workspace.Workspace{
		Name: "naming",
		Projects: []workspace.Project{
			project("good-name"),
			project("BadName"),
			project("also_bad"),
		},
		Rules: []workspace.Rule{namingRule()},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if len(result.Violations) != 2 {
		t.Fatalf("expected two naming violations, got %+v", result.Violations)
	}
	for _, v := range result.Violations {
		if v.Severity != workspace.SeverityWarning {
			t.Fatalf("naming violations default to warning, got %s", v.Severity)
		}
		if len(v.Projects) != 1 {
			t.Fatalf("naming violations name one project each, got %v", v.Projects)
		}
	}
}

func TestNamingConventionIsConfigurable(t *testing.T) {
	rule := namingRule()
	rule.Convention = "snake_case"
	rule.Severity = workspace.SeverityCritical

	ws := &workspace.Workspace{
		Name:     "naming",
		Projects: []workspace.Project{project("snake_ok"), project("kebab-now-bad")},
		Rules:    []workspace.Rule{rule},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", result.Violations)
	}
	if result.Violations[0].Projects[0] != "kebab-now-bad" {
		t.Fatalf("wrong project flagged: %+v", result.Violations[0])
	}
	if result.Violations[0].Severity != workspace.SeverityCritical {
		t.Fatalf("configured severity not honored: %+v", result.Violations[0])
	}
}

func TestArchitectureBoundaryViolations(t *testing.T) {
	ws := &workspace.Workspace{
		Name: "layered",
		Projects: []workspace.Project{
			project("domain-core"), project("app-api"), project("infra-db"),
		},
		Dependencies: []workspace.Dependency{
			edge("app-api", "domain-core"),  // allowed
			edge("domain-core", "infra-db"), // forbidden: domain may not reach infra
		},
		Rules: []workspace.Rule{{
			Name:    "layer-boundaries",
			Kind:    workspace.RuleArchitectureBoundary,
			Enabled: true,
			Layers: map[string]string{
				"domain-core": "domain",
				"app-api":     "application",
				"infra-db":    "infrastructure",
			},
			AllowedDependencies: map[string][]string{
				"application":    {"domain", "infrastructure"},
				"infrastructure": {"domain"},
			},
		}},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected one boundary violation, got %+v", result.Violations)
	}
	v := result.Violations[0]
	if v.Severity != workspace.SeverityCritical {
		t.Fatalf("boundary violations default to critical, got %s", v.Severity)
	}
	if len(v.Projects) != 2 || v.Projects[0] != "domain-core" || v.Projects[1] != "infra-db" {
		t.Fatalf("expected [domain-core infra-db], got %v", v.Projects)
	}
}

func TestDisabledRulesContributeNothing(t *testing.T) {
	rule := cycleRule()
	rule.Enabled = false

	ws := &workspace.Workspace{
		Name:         "cyclic-but-quiet",
		Projects:     []workspace.Project{project("a"), project("b")},
		Dependencies: []workspace.Dependency{edge("a", "b"), edge("b", "a")},
		Rules:        []workspace.Rule{rule},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("disabled rule must not fire, got %+v", result)
	}
}

// One pass collects independent violations from different rules; nothing
// short-circuits.
func TestValidateAllAggregatesAcrossRules(t *testing.T) {
	ws := &workspace.Workspace{
		Name: "messy",
		Projects: []workspace.Project{
			project("a"), project("b"), project("BadName"),
		},
		Dependencies: []workspace.Dependency{edge("a", "b"), edge("b", "a")},
		Rules:        []workspace.Rule{cycleRule(), namingRule()},
	}

	result, err := NewValidator(ws).ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll error: %v", err)
	}
	if len(result.Violations) != 2 {
		t.Fatalf("expected cycle + naming violations, got %+v", result.Violations)
	}
}

func TestUnknownRuleKindIsConfigurationError(t *testing.T) {
	ws := &workspace.Workspace{
		Name:     "broken",
		Projects: []workspace.Project{project("a")},
		Rules: []workspace.Rule{{
			Name:    "mystery",
			Kind:    "telemetry-budget",
			Enabled: true,
		}},
	}

	if _, err := NewValidator(ws).ValidateAll(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestBoundaryRuleWithoutLayersIsConfigurationError(t *testing.T) {
	ws := &workspace.Workspace{
		Name:     "broken",
		Projects: []workspace.Project{project("a")},
		Rules: []workspace.Rule{{
			Name:    "layer-boundaries",
			Kind:    workspace.RuleArchitectureBoundary,
			Enabled: true,
		}},
	}

	if _, err := NewValidator(ws).ValidateAll(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestEdgeReferencingUnknownProjectIsConfigurationError(t *testing.T) {
	ws := &workspace.Workspace{
		Name:         "broken",
		Projects:     []workspace.Project{project("a")},
		Dependencies: []workspace.Dependency{edge("a", "ghost")},
		Rules:        []workspace.Rule{cycleRule()},
	}

	if _, err := NewValidator(ws).ValidateAll(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
