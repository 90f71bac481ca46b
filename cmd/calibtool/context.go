package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"calibtool/internal/config"
	"calibtool/internal/invocation"
	"calibtool/internal/logging"
	"calibtool/internal/process"
	"calibtool/internal/services"
	"calibtool/internal/sessionlock"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	verboseFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		verboseFlag:  verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "", "load", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		var level string
		if c.logLevelFlag != nil {
			level = *c.logLevelFlag
		}
		verbose := c.verboseFlag != nil && *c.verboseFlag
		logger, err := logging.NewFromConfig(cfg, level, verbose)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) builder() (*invocation.Builder, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return invocation.NewBuilder(invocation.ToolsFromConfig(cfg)), nil
}

// newRunner wires the tools to the command's streams. The child only inherits
// stdin when it is a terminal; piped or redirected input stays with the menu.
func (c *commandContext) newRunner(cmd *cobra.Command, logger *slog.Logger) (*process.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return process.New(
		process.WithStdio(childStdin(cmd.InOrStdin()), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		process.WithWorkDir(cfg.Paths.WorkDir),
		process.WithLogger(logger),
	), nil
}

// childStdin returns r when it is an interactive terminal and nil otherwise,
// so a child never drains menu keys queued on a pipe or file.
func childStdin(r io.Reader) io.Reader {
	f, ok := r.(*os.File)
	if !ok || f == nil {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return f
	}
	return nil
}

// withSession holds the workspace lock and tags the context with a fresh
// session id for the duration of fn.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(ctx context.Context, logger *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	lock := sessionlock.New(cfg.LockPath())
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release workspace lock failed", logging.Error(err), logging.String("path", lock.Path()))
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithSessionID(ctx, uuid.NewString())
	logging.WithContext(ctx, logger).Debug("session started",
		logging.String("config", c.configPath),
		logging.String("command", cmd.CommandPath()),
	)
	return fn(ctx, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
