package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tessera-platform/tessera/internal/config"
	"github.com/tessera-platform/tessera/internal/graph"
	"github.com/tessera-platform/tessera/internal/version"
	"github.com/tessera-platform/tessera/internal/workspace"
)

type rootFlags struct {
	file    string
	jsonOut bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tessera",
		Short: "Workspace dependency, version, and policy engine",
		Long: `tessera maintains the dependency graph of a multi-project workspace,
coordinates semantic-version updates under declared constraints, and
validates workspace-wide policy rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.file, "file", "f", config.DefaultFile, "workspace definition file")
	cmd.PersistentFlags().BoolVar(&flags.jsonOut, "json", false, "emit machine-readable JSON instead of tables")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newValidateCmd(flags),
		newGraphCmd(flags),
		newPlanCmd(flags),
		newUpdateCmd(flags),
	)
	return cmd
}

func (f *rootFlags) logger() logr.Logger {
	if !f.verbose {
		return logr.Discard()
	}
	zl, err := zap.NewDevelopment()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}

func (f *rootFlags) loadWorkspace() (*workspace.Workspace, error) {
	return config.Load(f.file)
}

// buildGraph constructs the directed dependency graph from a snapshot. The
// loader has already validated that every edge references a known project.
func buildGraph(ws *workspace.Workspace) (*graph.Graph, error) {
	g := graph.New(true)
	for _, p := range ws.Projects {
		if err := g.AddProject(p); err != nil {
			return nil, err
		}
	}
	for _, d := range ws.Dependencies {
		if err := g.AddDependency(d); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// buildCoordinator wires a version coordinator over the workspace graph: every
// project is registered with its current version, and every dependency edge's
// constraint is registered against the project it targets.
func buildCoordinator(ws *workspace.Workspace, log logr.Logger) (*version.Coordinator, error) {
	g, err := buildGraph(ws)
	if err != nil {
		return nil, err
	}
	c := version.NewCoordinator(g, version.WithLogger(log))
	for _, p := range ws.Projects {
		if err := c.RegisterProject(p); err != nil {
			return nil, err
		}
	}
	for _, d := range ws.Dependencies {
		if d.Constraint == "" {
			continue
		}
		if err := c.RegisterConstraint(d.To, d.Constraint); err != nil {
			return nil, err
		}
	}
	return c, nil
}
