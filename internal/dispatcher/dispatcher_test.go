package dispatcher_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"calibtool/internal/dispatcher"
	"calibtool/internal/invocation"
	"calibtool/internal/services"
)

type recordingRunner struct {
	calls []invocation.Invocation
	err   error
}

func (r *recordingRunner) Run(_ context.Context, inv invocation.Invocation) error {
	r.calls = append(r.calls, inv)
	return r.err
}

var testTools = invocation.Tools{
	Capture:         "Capture_Video",
	Split:           "ReadVid",
	Calibrate:       "CV_Calib_V1",
	StereoCalibrate: "CV_Stereo_Calib",
	Undistort:       "CV_Undistort_Mono",
	UndistortStereo: "CV_Undistort_Stereo",
}

func newDispatcher(t *testing.T, input string, runner dispatcher.Runner, settings dispatcher.Settings) (*dispatcher.Dispatcher, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	d := dispatcher.New(invocation.NewBuilder(testTools), runner, settings,
		dispatcher.WithInput(strings.NewReader(input)),
		dispatcher.WithOutput(&out),
	)
	return d, &out
}

func workSettings(t *testing.T) dispatcher.Settings {
	t.Helper()
	settings := dispatcher.DefaultSettings()
	settings.WorkDir = t.TempDir()
	return settings
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantExe   []string
		wantArgs  [][]string
		wantInOut []string
	}{
		{
			name:     "capture uses default ports",
			input:    "1\n0\n",
			wantExe:  []string{"Capture_Video"},
			wantArgs: [][]string{{"30", "1", "0"}},
		},
		{
			name:     "left camera calibration",
			input:    "3\n0\n0\n",
			wantExe:  []string{"CV_Calib_V1"},
			wantArgs: [][]string{{"settings.xml", "left_calibration.xml", "L"}},
		},
		{
			name:     "right camera calibration",
			input:    "3\n1\n0\n",
			wantExe:  []string{"CV_Calib_V1"},
			wantArgs: [][]string{{"settings.xml", "right_calibration.xml", "R"}},
		},
		{
			name:  "unknown camera key runs nothing",
			input: "3\n2\n0\n",
		},
		{
			name:     "stereo calibration",
			input:    "4\n0\n",
			wantExe:  []string{"CV_Stereo_Calib"},
			wantArgs: [][]string{{"stereo_settings.xml", "stereo_calibration.xml"}},
		},
		{
			name:      "exit immediately",
			input:     "0\n",
			wantInOut: []string{"Exiting the calibration tool."},
		},
		{
			name:      "unknown top level key is a no-op",
			input:     "9\n-1\n0\n",
			wantInOut: []string{"Exiting the calibration tool."},
		},
		{
			name:      "non-integer input re-displays the menu",
			input:     "abc\n\n0\n",
			wantInOut: []string{`Invalid selection "abc"`, `Invalid selection ""`},
		},
		{
			name:      "overlong line is rejected and the menu continues",
			input:     "3\nx\n2\n2\n" + strings.Repeat("9", 70000) + "\n0\n",
			wantExe:   []string{"ReadVid", "ReadVid"},
			wantArgs:  [][]string{{"videos/CAP_2014923T184648.avi"}, {"videos/CAP_2014923T184648.avi"}},
			wantInOut: []string{`Invalid selection "x"`, "input longer than 65536 bytes ignored", "Exiting the calibration tool."},
		},
		{
			name:     "final line without newline is still read",
			input:    "1\n0",
			wantExe:  []string{"Capture_Video"},
			wantArgs: [][]string{{"30", "1", "0"}},
		},
		{
			name:     "whitespace around keys is ignored",
			input:    "  1 \n 0\n",
			wantExe:  []string{"Capture_Video"},
			wantArgs: [][]string{{"30", "1", "0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			d, out := newDispatcher(t, tt.input, runner, workSettings(t))
			if err := d.Run(context.Background()); err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if d.State() != dispatcher.StateExit {
				t.Fatalf("expected exit state, got %s", d.State())
			}
			if len(runner.calls) != len(tt.wantExe) {
				t.Fatalf("expected %d invocations, got %d: %+v", len(tt.wantExe), len(runner.calls), runner.calls)
			}
			for i, call := range runner.calls {
				if call.Executable != tt.wantExe[i] {
					t.Fatalf("call %d: executable %q, want %q", i, call.Executable, tt.wantExe[i])
				}
				if !reflect.DeepEqual(call.Args, tt.wantArgs[i]) {
					t.Fatalf("call %d: args %q, want %q", i, call.Args, tt.wantArgs[i])
				}
			}
			for _, fragment := range tt.wantInOut {
				if !strings.Contains(out.String(), fragment) {
					t.Fatalf("expected output to contain %q, got:\n%s", fragment, out.String())
				}
			}
		})
	}
}

func TestMenuRendering(t *testing.T) {
	d, out := newDispatcher(t, "3\n5\n0\n", &recordingRunner{}, workSettings(t))
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	for _, fragment := range []string{
		"Camera Calibration Tools",
		"\t1 - capture video from camera(s)",
		"\t0 - quit",
		"Select which camera to calibrate (L - 0/R - 1)",
		"-->",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, text)
		}
	}
	if got := strings.Count(text, "Camera Calibration Tools"); got != 2 {
		t.Fatalf("expected menu shown twice, got %d", got)
	}
}

func TestStepReportsOutcomes(t *testing.T) {
	runner := &recordingRunner{}
	d, _ := newDispatcher(t, "7\nx\n3\n9\n1\n0\n", runner, workSettings(t))
	ctx := context.Background()

	want := []dispatcher.Outcome{
		dispatcher.OutcomeNoop,
		dispatcher.OutcomeInvalidInput,
		dispatcher.OutcomeNoop,
		dispatcher.OutcomeExecuted,
		dispatcher.OutcomeExit,
	}
	for i, expected := range want {
		got, err := d.Step(ctx)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != expected {
			t.Fatalf("step %d: outcome %s, want %s", i, got, expected)
		}
		if expected != dispatcher.OutcomeExit && d.State() != dispatcher.StateMenu {
			t.Fatalf("step %d: expected menu state, got %s", i, d.State())
		}
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(runner.calls))
	}
}

func TestToolFailureReturnsToMenu(t *testing.T) {
	failure := services.Wrap(services.ErrProcessExit, "capture", "Capture_Video", "exited with status 2", nil)
	runner := &recordingRunner{err: failure}
	d, out := newDispatcher(t, "1\n4\n0\n", runner, workSettings(t))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected both tools attempted, got %d", len(runner.calls))
	}
	if !strings.Contains(out.String(), "warning: capture did not complete") {
		t.Fatalf("expected warning line, got:\n%s", out.String())
	}
}

func TestUnclassifiedRunnerErrorEndsSession(t *testing.T) {
	boom := errors.New("runner misconfigured")
	d, _ := newDispatcher(t, "1\n0\n", &recordingRunner{err: boom}, workSettings(t))
	if err := d.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestSplitCreatesOutputDirectoryIdempotently(t *testing.T) {
	settings := workSettings(t)
	runner := &recordingRunner{}
	d, _ := newDispatcher(t, "2\n2\n0\n", runner, settings)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	info, err := os.Stat(filepath.Join(settings.WorkDir, "captures"))
	if err != nil {
		t.Fatalf("expected captures directory: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected captures to be a directory")
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected split to run twice, got %d", len(runner.calls))
	}
	for _, call := range runner.calls {
		if call.Executable != "ReadVid" {
			t.Fatalf("unexpected executable %q", call.Executable)
		}
		if !reflect.DeepEqual(call.Args, []string{"videos/CAP_2014923T184648.avi"}) {
			t.Fatalf("unexpected split args %q", call.Args)
		}
	}
}

func TestSplitPrepareFailureSkipsTool(t *testing.T) {
	settings := workSettings(t)
	blocker := filepath.Join(settings.WorkDir, "captures")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	runner := &recordingRunner{}
	d, out := newDispatcher(t, "2\n0\n", runner, settings)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("expected split not to run, got %d calls", len(runner.calls))
	}
	if !strings.Contains(out.String(), "warning: split did not complete") {
		t.Fatalf("expected warning, got:\n%s", out.String())
	}
}

func TestSplitForwardsOptionalArguments(t *testing.T) {
	settings := workSettings(t)
	settings.Split = invocation.SplitOptions{PoseFile: "poses.txt", PassOutputDir: true}
	runner := &recordingRunner{}
	d, _ := newDispatcher(t, "2\n0\n", runner, settings)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"videos/CAP_2014923T184648.avi", "poses.txt", "captures"}
	if len(runner.calls) != 1 || !reflect.DeepEqual(runner.calls[0].Args, want) {
		t.Fatalf("unexpected calls %+v", runner.calls)
	}
}

func TestRunReturnsInputClosedOnEOF(t *testing.T) {
	runner := &recordingRunner{}
	d, _ := newDispatcher(t, "1\n", runner, workSettings(t))

	err := d.Run(context.Background())
	if !errors.Is(err, services.ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected capture before EOF, got %d calls", len(runner.calls))
	}
}

func TestRunReturnsInputClosedAtCameraPrompt(t *testing.T) {
	d, _ := newDispatcher(t, "3\n", &recordingRunner{}, workSettings(t))
	if err := d.Run(context.Background()); !errors.Is(err, services.ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, _ := newDispatcher(t, "1\n0\n", &recordingRunner{}, workSettings(t))
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScreenClearerRunsOnce(t *testing.T) {
	var cleared int
	var out bytes.Buffer
	d := dispatcher.New(invocation.NewBuilder(testTools), &recordingRunner{}, workSettings(t),
		dispatcher.WithInput(strings.NewReader("9\n0\n")),
		dispatcher.WithOutput(&out),
		dispatcher.WithScreenClearer(func(io.Writer) { cleared++ }),
	)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected one clear, got %d", cleared)
	}
}

func TestSettingsFromConfigOverrides(t *testing.T) {
	settings := dispatcher.DefaultSettings()
	settings.Framerate = "15"
	settings.LeftPort = "2"
	settings.RightPort = "3"
	runner := &recordingRunner{}
	d, _ := newDispatcher(t, "1\n0\n", runner, settings)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(runner.calls[0].Args, []string{"15", "2", "3"}) {
		t.Fatalf("unexpected args %q", runner.calls[0].Args)
	}
}
