package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"calibtool/internal/dispatcher"
)

const clearScreenSequence = "\x1b[H\x1b[2J"

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive calibration menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, ctx)
		},
	}
}

func runMenu(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	builder, err := ctx.builder()
	if err != nil {
		return err
	}

	return ctx.withSession(cmd, func(runCtx context.Context, logger *slog.Logger) error {
		runner, err := ctx.newRunner(cmd, logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		opts := []dispatcher.Option{
			dispatcher.WithInput(cmd.InOrStdin()),
			dispatcher.WithOutput(out),
			dispatcher.WithLogger(logger),
		}
		if cfg.Menu.ClearScreen && shouldColorize(out) {
			opts = append(opts, dispatcher.WithScreenClearer(func(w io.Writer) {
				fmt.Fprint(w, clearScreenSequence)
			}))
		}
		d := dispatcher.New(builder, runner, dispatcher.SettingsFromConfig(cfg), opts...)
		return d.Run(runCtx)
	})
}
