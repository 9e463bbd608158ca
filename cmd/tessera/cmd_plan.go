package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessera-platform/tessera/internal/report"
	"github.com/tessera-platform/tessera/internal/version"
)

func newPlanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <project>=<version> [<project>=<version> ...]",
		Short: "Build a multi-project update plan without applying anything",
		Long: `Checks that every requested update names a registered project and a
parseable version. Constraint compatibility is checked at apply time,
not here; an invalid plan is reported, not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests := make([]version.UpdateRequest, 0, len(args))
			for _, arg := range args {
				name, target, ok := strings.Cut(arg, "=")
				if !ok || name == "" || target == "" {
					return fmt.Errorf("invalid update %q, want <project>=<version>", arg)
				}
				requests = append(requests, version.UpdateRequest{Project: name, TargetVersion: target})
			}

			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}
			c, err := buildCoordinator(ws, flags.logger())
			if err != nil {
				return err
			}

			plan, err := c.PlanUpdates(requests)
			if err != nil {
				return err
			}
			if flags.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), plan)
			}
			report.WritePlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}
