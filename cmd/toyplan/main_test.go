package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

type runner struct {
	t      *testing.T
	config string
}

func (r runner) run(args ...string) string {
	r.t.Helper()
	out, err := r.try(args...)
	if err != nil {
		r.t.Fatalf("toyplan %s failed: %v\nOutput: %s", strings.Join(args, " "), err, out)
	}
	return out
}

func (r runner) try(args ...string) (string, error) {
	var out bytes.Buffer
	err := run(append([]string{"--config", r.config}, args...), &out)
	return out.String(), err
}

func expectContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("output does not contain %q:\n%s", want, output)
		}
	}
}

func TestEndToEndWorkflow(t *testing.T) {
	dir := t.TempDir()
	r := runner{t: t, config: filepath.Join(dir, "toyplan.db")}

	expectContains(t, r.run("init"), "Initialized toyplan storage", "Created a starter goal, group and task.")

	expectContains(t, r.run("goal", "add", "Health"), "Added goal: Health")
	expectContains(t, r.run("group", "add", "Morning", "-G", "Health"), "Added group: Morning")
	expectContains(t, r.run("task", "add", "Stretch", "-g", "Morning", "-n", "2", "-t", "health", "-e", "+3", "-d", "Ten minutes"),
		"Added task: Stretch")

	expectContains(t, r.run("today"),
		"[ ] Daily / Default / First task [0/1]",
		"[ ] Health / Morning / Stretch [0/2] #health - Ten minutes",
		"0 finished today")

	expectContains(t, r.run("task", "done", "Stretch"), "Progress on Stretch: 1/2")
	expectContains(t, r.run("task", "done", "Stretch"), "Congratulations! You finished Stretch.")
	expectContains(t, r.run("task", "done", "Stretch"), "Stretch is already finished.")

	expectContains(t, r.run("today"), "[x] Health / Morning / Stretch [2/2]", "1 finished today")
	expectContains(t, r.run("schedule", "-n", "3"), "Schedule for the next 3 day(s)", "(today)", "(tomorrow)", "(+2)")
	expectContains(t, r.run("stats"), "Goals:              2", "Finished today:     1")
	expectContains(t, r.run("goal", "list", "-t"), "Health\n  Morning\n    Stretch [2/2] #health")
	expectContains(t, r.run("validate", "--strict"), "No conflicts detected.")

	exportPath := filepath.Join(dir, "export.yaml")
	expectContains(t, r.run("export", "-o", exportPath), "Exported 2 goal(s) and 2 task(s)")
	r.run("goal", "add", "Scratch")
	expectContains(t, r.run("import", exportPath, "-y"), "Imported 2 goal(s) and 2 task(s)")
	if out := r.run("goal", "list"); strings.Contains(out, "Scratch") {
		t.Errorf("import did not replace data:\n%s", out)
	}

	expectContains(t, r.run("backup", "create"), "Backup created")
	expectContains(t, r.run("backup", "list"), "Available backups")

	if _, err := r.try("task", "done", "Nonexistent"); err == nil {
		t.Error("expected error for unknown task")
	}
	if _, err := r.try("task", "add", "Bad", "-g", "Morning", "--step", "0"); err == nil {
		t.Error("expected error for zero step")
	}
}

func TestJSONStoreWorkflow(t *testing.T) {
	r := runner{t: t, config: filepath.Join(t.TempDir(), "toyplan.json")}

	r.run("init")
	r.run("task", "add", "Water plants", "-g", "Default", "-e", "+2", "--step", "2")
	out := r.run("schedule")
	expectContains(t, out, "(today)", "(+2)", "Daily / Default / Water plants")
	if strings.Contains(out, "(tomorrow)") {
		t.Errorf("expected nothing tomorrow:\n%s", out)
	}
	expectContains(t, r.run("task", "list", "-a"), "[active] Daily / Default / Water plants")

	expectContains(t, r.run("settings", "--horizon-days", "2"), "Settings updated successfully.")
	out = r.run("schedule")
	expectContains(t, out, "Schedule for the next 2 day(s)")
	if strings.Contains(out, "(+2)") {
		t.Errorf("horizon setting not applied:\n%s", out)
	}

	if _, err := r.try("backup", "create"); err == nil {
		t.Error("expected backups to be refused for the JSON store")
	}
}

func TestUninitializedStore(t *testing.T) {
	r := runner{t: t, config: filepath.Join(t.TempDir(), "missing.db")}
	if _, err := r.try("today"); err == nil {
		t.Error("expected error before init")
	}
}

func TestShouldSkipLoad(t *testing.T) {
	tests := map[string]bool{
		"init":                      true,
		"doctor":                    true,
		"keyring set <conn-string>": true,
		"today":                     false,
		"task add <name>":           false,
	}
	for command, want := range tests {
		if got := shouldSkipLoad(command); got != want {
			t.Errorf("shouldSkipLoad(%q) = %v, want %v", command, got, want)
		}
	}
}
