package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testWorkspace = `workspace:
  name: acme
projects:
  - name: core
    path: libs/core
    type: library
    version: 1.0.0
  - name: storage
    path: libs/storage
    type: library
    version: 1.1.0
  - name: api
    path: services/api
    type: service
    version: 1.2.0
dependencies:
  - from: storage
    to: core
    constraint: ^1.0.0
  - from: api
    to: core
    constraint: ^1.0.0
  - from: api
    to: storage
    constraint: ^1.1.0
rules:
  - name: no-circular-dependencies
    kind: dependency-constraint
    enabled: true
  - name: naming-convention
    kind: naming-convention
    enabled: true
`

func writeTestWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	if err := os.WriteFile(path, []byte(testWorkspace), 0o644); err != nil {
		t.Fatalf("write workspace: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommandPasses(t *testing.T) {
	path := writeTestWorkspace(t)
	out, err := runCLI(t, "-f", path, "validate")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "all rules passed") {
		t.Fatalf("expected pass notice, got:\n%s", out)
	}
}

func TestValidateCommandFailsOnCycle(t *testing.T) {
	cyclic := strings.Replace(testWorkspace, "dependencies:", "dependencies:\n  - from: core\n    to: api\n", 1)
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	if err := os.WriteFile(path, []byte(cyclic), 0o644); err != nil {
		t.Fatalf("write workspace: %v", err)
	}

	out, err := runCLI(t, "-f", path, "validate")
	if err == nil {
		t.Fatalf("expected validate to fail, output:\n%s", out)
	}
	if !strings.Contains(out, "circular dependency") {
		t.Fatalf("expected cycle violation in output:\n%s", out)
	}
}

func TestGraphDependentsCommand(t *testing.T) {
	path := writeTestWorkspace(t)
	out, err := runCLI(t, "-f", path, "graph", "dependents", "core")
	if err != nil {
		t.Fatalf("graph dependents failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "storage") || !strings.Contains(out, "api") {
		t.Fatalf("expected storage and api in output:\n%s", out)
	}
}

func TestPlanCommandReportsInvalidPlan(t *testing.T) {
	path := writeTestWorkspace(t)
	out, err := runCLI(t, "-f", path, "plan", "missing-project=1.0.0")
	if err != nil {
		t.Fatalf("plan must not hard-fail on unknown projects: %v", err)
	}
	if !strings.Contains(out, "NOT valid") {
		t.Fatalf("expected invalid plan footer, got:\n%s", out)
	}
}

func TestUpdateCommandEnforcesConstraints(t *testing.T) {
	path := writeTestWorkspace(t)

	out, err := runCLI(t, "-f", path, "update", "core", "1.2.0")
	if err != nil {
		t.Fatalf("compatible update failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1.0.0 -> 1.2.0") {
		t.Fatalf("expected applied update in output:\n%s", out)
	}

	if _, err := runCLI(t, "-f", path, "update", "core", "2.0.0"); err == nil {
		t.Fatalf("expected incompatible update to fail")
	}
}

func TestUpdateCommandWriteBack(t *testing.T) {
	path := writeTestWorkspace(t)

	// storage has only the ^1.1.0 constraint from api's edge.
	out, err := runCLI(t, "-f", path, "update", "storage", "1.4.0", "--write")
	if err != nil {
		t.Fatalf("update --write failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back workspace: %v", err)
	}
	if !strings.Contains(string(data), "1.4.0") {
		t.Fatalf("updated version not persisted:\n%s", data)
	}
}
