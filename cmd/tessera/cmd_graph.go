package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessera-platform/tessera/internal/report"
)

func newGraphCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Query the workspace dependency graph",
	}

	deps := &cobra.Command{
		Use:   "deps <project>",
		Short: "List the projects a project directly depends on",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error {
			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}
			g, err := buildGraph(ws)
			if err != nil {
				return err
			}
			projects := g.DependenciesOf(args[0])
			if flags.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), projects)
			}
			report.WriteProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	dependents := &cobra.Command{
		Use:   "dependents <project>",
		Short: "List the projects that directly depend on a project",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error {
			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}
			g, err := buildGraph(ws)
			if err != nil {
				return err
			}
			projects := g.DependentsOf(args[0])
			if flags.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), projects)
			}
			report.WriteProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	affected := &cobra.Command{
		Use:   "affected <project>",
		Short: "List every transitive dependent a version change could reach",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error {
			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}
			c, err := buildCoordinator(ws, flags.logger())
			if err != nil {
				return err
			}
			projects := c.AffectedProjects(args[0])
			if flags.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), projects)
			}
			report.WriteProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	cycles := &cobra.Command{
		Use:   "cycles",
		Short: "List dependency cycles in the workspace",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error {
			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}
			g, err := buildGraph(ws)
			if err != nil {
				return err
			}
			found := g.DetectCycles()
			if flags.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), found)
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no cycles")
				return nil
			}
			for _, cycle := range found {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cycle, " -> "))
			}
			return fmt.Errorf("%d dependency cycle(s)", len(found))
		},
	}

	cmd.AddCommand(deps, dependents, affected, cycles)
	return cmd
}
