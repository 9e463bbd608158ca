package config

// Package config is the file boundary around the engine: it reads and writes
// tessera.yaml workspace definitions. Nothing below internal/config touches
// disk; the engine packages only ever see the in-memory snapshot produced
// here.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tessera-platform/tessera/internal/semver"
	"github.com/tessera-platform/tessera/internal/workspace"
)

// DefaultFile is the workspace definition filename looked up when no explicit
// path is given.
const DefaultFile = "tessera.yaml"

// File models tessera.yaml.
type File struct {
	Workspace struct {
		Name             string `yaml:"name"`
		NamingConvention string `yaml:"namingConvention,omitempty"`
	} `yaml:"workspace"`
	Projects     []workspace.Project    `yaml:"projects"`
	Dependencies []workspace.Dependency `yaml:"dependencies,omitempty"`
	Rules        []workspace.Rule       `yaml:"rules,omitempty"`
}

// Load reads and validates a workspace definition.
func Load(path string) (*workspace.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("workspace file %s not found", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates a workspace definition from raw bytes.
func FromYAML(data []byte) (*workspace.Workspace, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse workspace file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	ws := &workspace.Workspace{
		Name:             f.Workspace.Name,
		NamingConvention: f.Workspace.NamingConvention,
		Projects:         f.Projects,
		Dependencies:     f.Dependencies,
		Rules:            f.Rules,
	}
	for i := range ws.Projects {
		if ws.Projects[i].Status == "" {
			ws.Projects[i].Status = workspace.StatusUnknown
		}
	}
	return ws, nil
}

// Validate ensures the file meets the required structure before it becomes a
// workspace snapshot.
func (f *File) Validate() error {
	if f.Workspace.Name == "" {
		return fmt.Errorf("workspace.name is required")
	}

	names := make(map[string]bool, len(f.Projects))
	for _, p := range f.Projects {
		if p.Name == "" {
			return fmt.Errorf("project with path %q has no name", p.Path)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate project name %q", p.Name)
		}
		names[p.Name] = true
		if _, err := semver.ParseVersion(p.Version); err != nil {
			return fmt.Errorf("project %q: %w", p.Name, err)
		}
	}

	for _, d := range f.Dependencies {
		if !names[d.From] {
			return fmt.Errorf("dependency references unknown project %q", d.From)
		}
		if !names[d.To] {
			return fmt.Errorf("dependency references unknown project %q", d.To)
		}
		if d.Constraint != "" {
			if _, err := semver.ParseConstraint(d.Constraint); err != nil {
				return fmt.Errorf("dependency %s -> %s: %w", d.From, d.To, err)
			}
		}
	}

	for _, r := range f.Rules {
		switch r.Kind {
		case workspace.RuleDependencyConstraint, workspace.RuleNamingConvention, workspace.RuleArchitectureBoundary:
		default:
			return fmt.Errorf("rule %q has unknown kind %q", r.Name, r.Kind)
		}
	}
	return nil
}

// Save writes ws back out as tessera.yaml. Used by commands that persist
// applied version updates.
func Save(path string, ws *workspace.Workspace) error {
	var f File
	f.Workspace.Name = ws.Name
	f.Workspace.NamingConvention = ws.NamingConvention
	f.Projects = ws.Projects
	f.Dependencies = ws.Dependencies
	f.Rules = ws.Rules

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal workspace file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
