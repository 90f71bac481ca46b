package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"calibtool/internal/services"
	"calibtool/internal/sessionlock"
	"calibtool/internal/testsupport"
)

func TestMenuRunsSelectedTools(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, nil, env.configPath, "1\n3\n1\n0\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "Camera Calibration Tools")
	requireContains(t, out, "Exiting the calibration tool.")

	if got := testsupport.StubArgs(t, env.cfg, "Capture_Video"); !reflect.DeepEqual(got, []string{"30", "1", "0"}) {
		t.Fatalf("unexpected capture args %q", got)
	}
	want := []string{"settings.xml", "right_calibration.xml", "R"}
	if got := testsupport.StubArgs(t, env.cfg, "CV_Calib_V1"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected calibrate args %q", got)
	}
}

func TestMenuSubcommandMatchesDefault(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"menu"}, env.configPath, "4\n0\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "Executing")
	want := []string{"stereo_settings.xml", "stereo_calibration.xml"}
	if got := testsupport.StubArgs(t, env.cfg, "CV_Stereo_Calib"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected stereo args %q", got)
	}
}

func TestMenuSplitCreatesOutputDir(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, nil, env.configPath, "2\n2\n0\n"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if info, err := os.Stat(filepath.Join(env.cfg.Paths.WorkDir, "captures")); err != nil || !info.IsDir() {
		t.Fatalf("expected captures dir in work dir: %v", err)
	}
	want := []string{"videos/CAP_2014923T184648.avi", "videos/CAP_2014923T184648.avi"}
	if got := testsupport.StubArgs(t, env.cfg, "ReadVid"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected split args %q", got)
	}
}

func TestMenuToolFailureKeepsSessionAlive(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFailingBinary("Capture_Video", 4))

	out, _, err := runCLI(t, nil, env.configPath, "1\n4\n0\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "warning: capture did not complete")
	if got := testsupport.StubArgs(t, env.cfg, "CV_Stereo_Calib"); len(got) != 2 {
		t.Fatalf("expected stereo to run after the failure, got %q", got)
	}
}

func TestMenuEOFIsAnError(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, nil, env.configPath, "9\n")
	if !errors.Is(err, services.ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode(err))
	}
}

func TestMenuRefusesWhenWorkspaceLocked(t *testing.T) {
	env := setupCLITestEnv(t)

	held := sessionlock.New(env.cfg.LockPath())
	if err := held.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	t.Cleanup(func() { _ = held.Release() })

	_, _, err := runCLI(t, nil, env.configPath, "0\n")
	if !sessionlock.IsLocked(err) {
		t.Fatalf("expected locked error, got %v", err)
	}
}

func TestMenuWritesLogFile(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"--log-level", "debug"}, env.configPath, "1\n0\n"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	data, err := os.ReadFile(env.cfg.LogPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	requireContains(t, string(data), "launching tool")
	requireContains(t, string(data), "session_id=")
}
