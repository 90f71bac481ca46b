package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"calibtool/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The work directory exists; the log directory is left for the code under
// test to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Menu.ClearScreen = false
	if err := os.MkdirAll(cfgVal.Paths.WorkDir, 0o755); err != nil {
		t.Fatalf("mkdir work dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedBinaries writes stub executables for the provided names into a
// private bin directory and points tools.dir at it. If names is empty, every
// configured calibration tool is stubbed. Each stub appends its arguments,
// one per line, to <bin>/<name>.args and exits with the code in
// <bin>/<name>.exit when that file exists.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		if runtime.GOOS == "windows" {
			b.t.Skip("shell stubs are not executable on windows")
		}
		if len(names) == 0 {
			tools := b.cfg.Tools
			names = []string{tools.Capture, tools.CapturePoses, tools.Split, tools.Calibrate, tools.StereoCalibrate, tools.Undistort, tools.UndistortStereo}
		}
		binDir := StubDir(b.cfg)
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, []byte(stubScript(target)), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.cfg.Tools.Dir = binDir
	}
}

// WithFailingBinary makes the named stub exit with code.
func WithFailingBinary(name string, code int) ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		if err := os.MkdirAll(StubDir(b.cfg), 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		path := filepath.Join(StubDir(b.cfg), name+".exit")
		if err := os.WriteFile(path, []byte(itoa(code)+"\n"), 0o644); err != nil {
			b.t.Fatalf("write exit code for %s: %v", name, err)
		}
	}
}

// StubDir returns the directory holding stub executables for cfg.
func StubDir(cfg *config.Config) string {
	return filepath.Join(BaseDir(cfg), "bin")
}

// StubArgs returns the argument lines recorded by the named stub, one entry
// per argument in call order.
func StubArgs(t testing.TB, cfg *config.Config, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(StubDir(cfg), name+".args"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read stub args for %s: %v", name, err)
	}
	return splitLines(string(data))
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}

func stubScript(target string) string {
	return "#!/bin/sh\n" +
		"for arg in \"$@\"; do printf '%s\\n' \"$arg\" >> '" + target + ".args'; done\n" +
		"if [ -f '" + target + ".exit' ]; then exit \"$(cat '" + target + ".exit')\"; fi\n" +
		"exit 0\n"
}
