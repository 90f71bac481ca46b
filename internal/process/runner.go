package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"calibtool/internal/invocation"
	"calibtool/internal/logging"
	"calibtool/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, cmd Command) error
}

// Command is a fully resolved process launch.
type Command struct {
	Binary string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError reports an external tool that ran but exited non-zero.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithStdio connects the child process to the given streams. Defaults are the
// operator's terminal.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithWorkDir sets the directory the tools run in.
func WithWorkDir(dir string) Option {
	return func(r *Runner) {
		r.workDir = dir
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner executes invocations one at a time and classifies their failures.
// Tool output is passed straight through; it is never captured or parsed.
type Runner struct {
	exec    Executor
	workDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
}

// New constructs a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		exec:   commandExecutor{},
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "runner")
	return r
}

// WorkDir returns the directory the tools run in.
func (r *Runner) WorkDir() string {
	return r.workDir
}

// Run executes inv synchronously. Launch failures wrap
// services.ErrProcessLaunch; non-zero exits wrap services.ErrProcessExit and
// an *ExitError carrying the code.
func (r *Runner) Run(ctx context.Context, inv invocation.Invocation) error {
	ctx = services.WithOperation(ctx, inv.Operation.String())
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("launching tool",
		logging.String("command", inv.String()),
		logging.String("work_dir", r.workDir),
	)

	started := time.Now()
	err := r.exec.Run(ctx, Command{
		Binary: inv.Executable,
		Args:   append([]string(nil), inv.Args...),
		Dir:    r.workDir,
		Stdin:  r.stdin,
		Stdout: r.stdout,
		Stderr: r.stderr,
	})
	elapsed := time.Since(started).Round(time.Millisecond)
	if err == nil {
		logger.Info("tool finished", logging.Duration("elapsed", elapsed))
		return nil
	}

	classified := classify(inv, err)
	logger.Debug("tool failed", logging.Duration("elapsed", elapsed), logging.Error(classified))
	return classified
}

func classify(inv invocation.Invocation, err error) error {
	if errors.Is(err, services.ErrProcessLaunch) || errors.Is(err, services.ErrProcessExit) {
		return err
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		return services.Wrap(services.ErrProcessExit, inv.Operation.String(), inv.Executable,
			fmt.Sprintf("exited with status %d", code), &ExitError{Code: code, Err: err})
	}
	var toolExit *ExitError
	if errors.As(err, &toolExit) {
		return services.Wrap(services.ErrProcessExit, inv.Operation.String(), inv.Executable,
			fmt.Sprintf("exited with status %d", toolExit.Code), err)
	}
	return services.Wrap(services.ErrProcessLaunch, inv.Operation.String(), inv.Executable, "could not start", err)
}

// ExitCode extracts the tool exit code from err, if it carries one.
func ExitCode(err error) (int, bool) {
	var toolExit *ExitError
	if errors.As(err, &toolExit) {
		return toolExit.Code, true
	}
	return 0, false
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Binary, c.Args...) //nolint:gosec
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	return cmd.Wait()
}
