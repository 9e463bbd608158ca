package report

// Package report formats engine results for humans and machines. The engine
// returns plain data values; everything presentational lives here.

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tessera-platform/tessera/internal/version"
	"github.com/tessera-platform/tessera/internal/workspace"
)

// WriteJSON renders any engine result value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteValidation renders a validation result as a table, or a short pass
// notice when the workspace is clean.
func WriteValidation(w io.Writer, result workspace.ValidationResult) {
	if result.Passed {
		fmt.Fprintln(w, "all rules passed")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Rule", "Severity", "Projects", "Message"})
	for _, v := range result.Violations {
		tw.AppendRow(table.Row{v.Rule, v.Severity, strings.Join(v.Projects, ", "), v.Message})
	}
	tw.Render()
}

// WritePlan renders an update plan as a table with a validity footer.
func WritePlan(w io.Writer, plan version.UpdatePlan) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Project", "Target", "Problem"})
	for _, u := range plan.Updates {
		tw.AppendRow(table.Row{u.Project, u.TargetVersion, u.Reason})
	}
	tw.Render()
	if plan.Valid {
		fmt.Fprintln(w, "plan is valid")
	} else {
		fmt.Fprintln(w, "plan is NOT valid")
	}
}

// WriteUpdateResult renders one applied update.
func WriteUpdateResult(w io.Writer, res version.UpdateResult) {
	fmt.Fprintf(w, "%s: %s -> %s\n", res.Project, res.OldVersion, res.NewVersion)
}

// WriteProjects renders a project listing.
func WriteProjects(w io.Writer, projects []workspace.Project) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Name", "Version", "Type", "Path", "Status"})
	for _, p := range projects {
		tw.AppendRow(table.Row{p.Name, p.Version, p.Type, p.Path, p.Status})
	}
	tw.Render()
}
