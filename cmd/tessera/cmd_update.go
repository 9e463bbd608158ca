package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessera-platform/tessera/internal/config"
	"github.com/tessera-platform/tessera/internal/report"
)

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "update <project> <version>",
		Short: "Validate and apply one version update",
		Long: `Rejects updates that violate a registered constraint. Major-version
changes that pass validation are applied but flagged as breaking for
review of the transitive dependents.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, target := args[0], args[1]

			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}
			c, err := buildCoordinator(ws, flags.logger())
			if err != nil {
				return err
			}

			breaking, err := c.IsBreakingChange(name, target)
			if err != nil {
				return err
			}

			res, err := c.UpdateVersion(name, target)
			if err != nil {
				return err
			}

			if flags.jsonOut {
				if err := report.WriteJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				report.WriteUpdateResult(cmd.OutOrStdout(), res)
			}

			if breaking {
				affected := c.AffectedProjects(name)
				fmt.Fprintf(cmd.OutOrStdout(), "warning: breaking change, %d dependent project(s) affected\n", len(affected))
				if !flags.jsonOut && len(affected) > 0 {
					report.WriteProjects(cmd.OutOrStdout(), affected)
				}
			}

			if write {
				for i := range ws.Projects {
					if ws.Projects[i].Name == name {
						ws.Projects[i].Version = res.NewVersion
					}
				}
				if err := config.Save(flags.file, ws); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "persist the applied version back to the workspace file")
	return cmd
}
