package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"calibtool/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected blank command to be reported as unconfigured, got %#v", results[2])
	}
}

func TestToolRequirementsHonourToolsDir(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Dir = "/opt/calib/bin"

	reqs := ToolRequirements(&cfg)
	if len(reqs) != 7 {
		t.Fatalf("expected seven tool requirements, got %d", len(reqs))
	}
	if reqs[0].Command != filepath.Join("/opt/calib/bin", "Capture_Video") {
		t.Fatalf("unexpected capture command %q", reqs[0].Command)
	}
	if last := reqs[len(reqs)-1]; last.Command != filepath.Join("/opt/calib/bin", "Capture_Video_Poses") {
		t.Fatalf("unexpected pose capture command %q", last.Command)
	}
	for _, req := range reqs[:4] {
		if req.Optional {
			t.Fatalf("menu tool %s should be required", req.Name)
		}
	}
	for _, req := range reqs[4:] {
		if !req.Optional {
			t.Fatalf("subcommand-only tool %s should be optional", req.Name)
		}
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b"},
		{Name: "c", Optional: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0].Name != "b" {
		t.Fatalf("unexpected missing set %#v", missing)
	}
}
