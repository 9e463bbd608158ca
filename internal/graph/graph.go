package graph

// Package graph stores workspace projects and their directed dependency edges,
// and answers adjacency queries in both directions.
//
// Both query directions are served from indices maintained incrementally on
// every AddDependency, so DependenciesOf and DependentsOf cost O(edges incident
// to the queried project) rather than a scan of the full edge list. Cycles are
// detected, never rejected: an edge that closes a cycle is accepted here and
// surfaced later as a policy violation by the rules validator.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tessera-platform/tessera/internal/workspace"
)

type Graph struct {
	directed bool

	order    []string
	projects map[string]workspace.Project

	edges []workspace.Dependency

	// outgoing[from] and incoming[to] hold target project names in edge
	// insertion order, one entry per edge (duplicates included). An undirected
	// graph mirrors every edge into both indices of both endpoints.
	outgoing map[string][]string
	incoming map[string][]string
}

// New returns an empty graph. A directed graph answers DependentsOf from a
// mirrored reverse index; an undirected one treats every edge symmetrically.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		projects: make(map[string]workspace.Project),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddProject registers a project. Registering a name that already exists fails
// with ErrDuplicateProject and leaves the existing entry untouched.
func (g *Graph) AddProject(p workspace.Project) error {
	if _, exists := g.projects[p.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProject, p.Name)
	}
	g.projects[p.Name] = p
	g.order = append(g.order, p.Name)
	return nil
}

// AddDependency appends a directed edge. Both endpoints must already be
// registered; duplicate edges between the same pair are permitted.
func (g *Graph) AddDependency(d workspace.Dependency) error {
	if _, ok := g.projects[d.From]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProject, d.From)
	}
	if _, ok := g.projects[d.To]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProject, d.To)
	}

	g.edges = append(g.edges, d)
	g.outgoing[d.From] = append(g.outgoing[d.From], d.To)
	g.incoming[d.To] = append(g.incoming[d.To], d.From)
	if !g.directed {
		g.outgoing[d.To] = append(g.outgoing[d.To], d.From)
		g.incoming[d.From] = append(g.incoming[d.From], d.To)
	}
	return nil
}

// Projects returns all registered projects in insertion order.
func (g *Graph) Projects() []workspace.Project {
	out := make([]workspace.Project, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.projects[name])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []workspace.Dependency {
	return append([]workspace.Dependency(nil), g.edges...)
}

// HasProject reports whether name is registered.
func (g *Graph) HasProject(name string) bool {
	_, ok := g.projects[name]
	return ok
}

// DependenciesOf returns the projects that name directly depends on, unique by
// target in first-seen order. Unknown names and leaf projects both yield an
// empty slice, not an error.
func (g *Graph) DependenciesOf(name string) []workspace.Project {
	return g.collect(g.outgoing[name])
}

// DependentsOf returns the projects that directly depend on name, with the
// same ordering and unknown-name rules as DependenciesOf.
func (g *Graph) DependentsOf(name string) []workspace.Project {
	return g.collect(g.incoming[name])
}

func (g *Graph) collect(names []string) []workspace.Project {
	out := make([]workspace.Project, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, g.projects[n])
	}
	return out
}

// DetectCycles finds every distinct dependency cycle and returns the project
// names on each one. Traversal is an iterative depth-first search with
// white/gray/black marking; hitting a gray node closes a cycle, which is
// reconstructed by walking the parent chain recorded on the way down.
func (g *Graph) DetectCycles() [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))
	parent := make(map[string]string, len(g.order))

	var cycles [][]string
	reported := make(map[string]bool)

	type frame struct {
		name string
		next int
	}

	for _, root := range g.order {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{name: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			targets := g.uniqueTargets(top.name)

			if top.next >= len(targets) {
				color[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := targets[top.next]
			top.next++

			switch color[next] {
			case white:
				color[next] = gray
				parent[next] = top.name
				stack = append(stack, frame{name: next})
			case gray:
				cycle := []string{next}
				for cur := top.name; cur != next; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				if key := cycleKey(cycle); !reported[key] {
					reported[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
	}
	return cycles
}

func (g *Graph) uniqueTargets(name string) []string {
	raw := g.outgoing[name]
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, n := range raw {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func cycleKey(cycle []string) string {
	names := append([]string(nil), cycle...)
	sort.Strings(names)
	return strings.Join(names, "\x00")
}
