package testsupport

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestNewConfigUsesTempDirs(t *testing.T) {
	cfg := NewConfig(t)
	if info, err := os.Stat(cfg.Paths.WorkDir); err != nil || !info.IsDir() {
		t.Fatalf("expected work dir to exist: %v", err)
	}
	if filepath.Dir(cfg.Paths.LogDir) != BaseDir(cfg) {
		t.Fatalf("log dir %q not under base %q", cfg.Paths.LogDir, BaseDir(cfg))
	}
	if cfg.Menu.ClearScreen {
		t.Fatal("expected screen clearing disabled in tests")
	}
}

func TestStubbedBinariesRecordArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	cfg := NewConfig(t, WithStubbedBinaries("Capture_Video"), WithFailingBinary("Capture_Video", 3))

	cmd := exec.Command(cfg.ToolPath("Capture_Video"), "30", "a b", "")
	err := cmd.Run()
	var exitErr *exec.ExitError
	if err == nil || !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %v", err)
	}
	got := StubArgs(t, cfg, "Capture_Video")
	if !reflect.DeepEqual(got, []string{"30", "a b", ""}) {
		t.Fatalf("unexpected recorded args %q", got)
	}
	if StubArgs(t, cfg, "ReadVid") != nil {
		t.Fatal("expected no args for an unused stub")
	}
}
