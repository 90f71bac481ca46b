package dispatcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"calibtool/internal/invocation"
	"calibtool/internal/logging"
	"calibtool/internal/services"
)

// State is the dispatcher's position in the menu state machine.
type State int

const (
	StateMenu State = iota
	StateAwaitCameraSelect
	StateExecuting
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateAwaitCameraSelect:
		return "await_camera_select"
	case StateExecuting:
		return "executing"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Outcome describes what one menu cycle did.
type Outcome int

const (
	// OutcomeExecuted means the selected tool ran and exited zero.
	OutcomeExecuted Outcome = iota
	// OutcomeToolFailed means the tool could not start or exited non-zero.
	OutcomeToolFailed
	// OutcomeNoop means the key matched no entry and nothing ran.
	OutcomeNoop
	// OutcomeInvalidInput means the operator typed something other than an integer.
	OutcomeInvalidInput
	// OutcomeExit means the operator chose to quit.
	OutcomeExit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExecuted:
		return "executed"
	case OutcomeToolFailed:
		return "tool_failed"
	case OutcomeNoop:
		return "noop"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Runner executes one invocation to completion. Failures wrapping
// services.ErrProcessLaunch or services.ErrProcessExit are reported and the
// menu continues; any other error ends the session.
type Runner interface {
	Run(ctx context.Context, inv invocation.Invocation) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithInput sets the operator input stream (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.input = r
		}
	}
}

// WithOutput sets the menu output stream (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		if w != nil {
			d.out = w
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithScreenClearer installs a hook that clears the console once when the
// session starts.
func WithScreenClearer(clear func(io.Writer)) Option {
	return func(d *Dispatcher) {
		d.clear = clear
	}
}

// Dispatcher owns the interactive menu loop. It reads one integer key per
// prompt, builds the matching invocation, runs it synchronously, and returns
// to the menu whatever the tool's outcome.
type Dispatcher struct {
	builder  *invocation.Builder
	runner   Runner
	settings Settings
	input    io.Reader
	out      io.Writer
	logger   *slog.Logger
	clear    func(io.Writer)

	reader *bufio.Reader
	state  State
}

// New constructs a Dispatcher in StateMenu.
func New(builder *invocation.Builder, runner Runner, settings Settings, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		builder:  builder,
		runner:   runner,
		settings: settings,
		input:    os.Stdin,
		out:      os.Stdout,
		state:    StateMenu,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.logger, "dispatcher")
	d.reader = bufio.NewReader(d.input)
	return d
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return d.state
}

// Run loops until the operator selects KeyExit. It returns nil on a normal
// exit, an error wrapping services.ErrInputClosed when input ends first, and
// the context error on cancellation.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d.clear != nil {
		d.clear(d.out)
	}
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("menu session started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := d.Step(ctx)
		if err != nil {
			logger.Info("menu session ended", logging.Error(err))
			return err
		}
		if outcome == OutcomeExit {
			logger.Info("menu session ended", logging.String("reason", "operator exit"))
			return nil
		}
	}
}

// Step runs a single menu cycle: display the menu, read a key, act on it.
// Errors are returned only for conditions that end the session.
func (d *Dispatcher) Step(ctx context.Context) (Outcome, error) {
	if d.state == StateExit {
		return OutcomeExit, nil
	}
	d.state = StateMenu
	writeMenu(d.out)

	key, ok, err := d.readKey()
	if err != nil {
		return OutcomeExit, err
	}
	if !ok {
		return OutcomeInvalidInput, nil
	}

	switch key {
	case KeyCapture:
		s := d.settings
		return d.execute(ctx, d.builder.Capture(s.Framerate, s.LeftPort, s.RightPort), nil)
	case KeySplit:
		s := d.settings
		plan := d.builder.SplitWithOptions(s.SplitSource, s.SplitOutputDir, s.Split)
		return d.execute(ctx, plan.Invocation, func() error { return plan.Prepare(s.WorkDir) })
	case KeyCalibrate:
		return d.selectCamera(ctx)
	case KeyStereo:
		s := d.settings
		return d.execute(ctx, d.builder.StereoCalibrate(s.StereoSettings, s.StereoOutput), nil)
	case KeyExit:
		fmt.Fprintln(d.out, exitMessage)
		d.state = StateExit
		return OutcomeExit, nil
	default:
		d.logger.Debug("unmatched menu key", logging.Int("key", key))
		return OutcomeNoop, nil
	}
}

func (d *Dispatcher) selectCamera(ctx context.Context) (Outcome, error) {
	d.state = StateAwaitCameraSelect
	writeCameraPrompt(d.out)

	key, ok, err := d.readKey()
	if err != nil {
		return OutcomeExit, err
	}
	if !ok {
		d.state = StateMenu
		return OutcomeInvalidInput, nil
	}

	s := d.settings
	switch key {
	case CameraKeyLeft:
		return d.execute(ctx, d.builder.Calibrate(s.CalibrationSettings, s.LeftCalibration, invocation.CameraLeft), nil)
	case CameraKeyRight:
		return d.execute(ctx, d.builder.Calibrate(s.CalibrationSettings, s.RightCalibration, invocation.CameraRight), nil)
	default:
		d.logger.Debug("unmatched camera key", logging.Int("key", key))
		d.state = StateMenu
		return OutcomeNoop, nil
	}
}

// maxLineBytes bounds one line of operator input. Longer lines are drained
// and rejected as invalid input.
const maxLineBytes = 64 * 1024

// readKey reads one line and parses it as an integer. A non-integer or
// overlong line is reported to the operator and returns ok=false without an
// error.
func (d *Dispatcher) readKey() (int, bool, error) {
	raw, overlong, err := d.readLine()
	if err != nil {
		d.state = StateExit
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(d.out)
			return 0, false, fmt.Errorf("%w: end of input before exit was selected", services.ErrInputClosed)
		}
		return 0, false, fmt.Errorf("%w: read input: %w", services.ErrInputClosed, err)
	}
	if overlong {
		d.rejectInput(fmt.Sprintf("line exceeds %d bytes", maxLineBytes))
		fmt.Fprintf(d.out, "Invalid selection: input longer than %d bytes ignored.\n", maxLineBytes)
		return 0, false, nil
	}
	line := strings.TrimSpace(raw)
	key, err := strconv.Atoi(line)
	if err != nil {
		d.rejectInput(fmt.Sprintf("%q is not a number", line))
		fmt.Fprintf(d.out, "Invalid selection %q: enter one of the listed numbers.\n", line)
		return 0, false, nil
	}
	return key, true, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF is reported only when no bytes
// remain. Lines longer than maxLineBytes are consumed in full and flagged.
func (d *Dispatcher) readLine() (string, bool, error) {
	var buf []byte
	overlong := false
	for {
		chunk, isPrefix, err := d.reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || overlong) {
				return string(buf), overlong, nil
			}
			return "", false, err
		}
		if !overlong {
			if len(buf)+len(chunk) > maxLineBytes {
				overlong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), overlong, nil
		}
	}
}

func (d *Dispatcher) rejectInput(message string) {
	parseErr := services.Wrap(services.ErrInputParse, "menu", "", message, nil)
	d.logger.Debug("invalid menu input", logging.Error(parseErr))
}

func (d *Dispatcher) execute(ctx context.Context, inv invocation.Invocation, prepare func() error) (Outcome, error) {
	d.state = StateExecuting
	defer func() { d.state = StateMenu }()

	ctx = services.WithOperation(ctx, inv.Operation.String())
	logger := logging.WithContext(ctx, d.logger)

	if prepare != nil {
		if err := prepare(); err != nil {
			d.warn(logger, inv, err)
			return OutcomeToolFailed, nil
		}
	}

	fmt.Fprintf(d.out, "Executing %s for %s\n", inv.Executable, inv.Operation)
	err := d.runner.Run(ctx, inv)
	if err == nil {
		return OutcomeExecuted, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return OutcomeToolFailed, ctxErr
	}
	if services.IsFatal(err) {
		return OutcomeToolFailed, err
	}
	d.warn(logger, inv, err)
	return OutcomeToolFailed, nil
}

func (d *Dispatcher) warn(logger *slog.Logger, inv invocation.Invocation, err error) {
	fmt.Fprintf(d.out, "warning: %s did not complete: %v\n", inv.Operation, err)
	eventType := "tool_failed"
	switch {
	case errors.Is(err, services.ErrProcessLaunch):
		eventType = "process_launch_failed"
	case errors.Is(err, services.ErrProcessExit):
		eventType = "process_exit_nonzero"
	}
	logging.WarnWithContext(logger, "tool did not complete", eventType,
		logging.String("command", inv.String()),
		logging.Error(err),
	)
}
