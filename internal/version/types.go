package version

// UpdateRequest is one (project, target version) pair submitted for planning.
type UpdateRequest struct {
	Project       string `json:"project"`
	TargetVersion string `json:"targetVersion"`
}

// UpdateResult is the immutable record of one applied update. Success is true
// exactly when Err is empty; precondition failures never produce a result at
// all, they fail the call.
type UpdateResult struct {
	Project    string `json:"project"`
	OldVersion string `json:"oldVersion"`
	NewVersion string `json:"newVersion"`
	Success    bool   `json:"success"`
	Err        string `json:"error,omitempty"`
}

// PlannedUpdate is one entry of an update plan. Reason is empty for
// well-formed entries and names the problem otherwise.
type PlannedUpdate struct {
	Project       string `json:"project"`
	TargetVersion string `json:"targetVersion"`
	Reason        string `json:"reason,omitempty"`
}

// UpdatePlan is an ordered batch of planned updates. Valid is true only when
// every entry references a registered project and a parseable target version;
// constraint compatibility is checked at apply time, not here.
type UpdatePlan struct {
	Updates []PlannedUpdate `json:"updates"`
	Valid   bool            `json:"valid"`
}
