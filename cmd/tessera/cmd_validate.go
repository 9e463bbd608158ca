package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessera-platform/tessera/internal/report"
	"github.com/tessera-platform/tessera/internal/rules"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Evaluate every enabled policy rule against the workspace",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error {
			ws, err := flags.loadWorkspace()
			if err != nil {
				return err
			}

			validator := rules.NewValidator(ws, rules.WithLogger(flags.logger()))
			result, err := validator.ValidateAll()
			if err != nil {
				return err
			}

			if flags.jsonOut {
				if err := report.WriteJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				report.WriteValidation(cmd.OutOrStdout(), result)
			}

			if !result.Passed {
				return fmt.Errorf("%d policy violation(s)", len(result.Violations))
			}
			return nil
		},
	}
}
