package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"calibtool/internal/dispatcher"
	"calibtool/internal/invocation"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the command each menu key would run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			builder, err := ctx.builder()
			if err != nil {
				return err
			}
			rows := planRows(builder, dispatcher.SettingsFromConfig(cfg))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Work directory: %s\n", cfg.Paths.WorkDir)
			fmt.Fprintln(out, renderTable(
				[]string{"Key", "Operation", "Command", "Prepares"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func planRows(b *invocation.Builder, s dispatcher.Settings) [][]string {
	key := strconv.Itoa
	split := b.SplitWithOptions(s.SplitSource, s.SplitOutputDir, s.Split)
	row := func(k string, inv invocation.Invocation, prepares string) []string {
		return []string{k, inv.Operation.String(), inv.String(), prepares}
	}
	return [][]string{
		row(key(dispatcher.KeyCapture), b.Capture(s.Framerate, s.LeftPort, s.RightPort), ""),
		row(key(dispatcher.KeySplit), split.Invocation, "mkdir "+split.OutputDir),
		row(fmt.Sprintf("%d/%d", dispatcher.KeyCalibrate, dispatcher.CameraKeyLeft),
			b.Calibrate(s.CalibrationSettings, s.LeftCalibration, invocation.CameraLeft), ""),
		row(fmt.Sprintf("%d/%d", dispatcher.KeyCalibrate, dispatcher.CameraKeyRight),
			b.Calibrate(s.CalibrationSettings, s.RightCalibration, invocation.CameraRight), ""),
		row(key(dispatcher.KeyStereo), b.StereoCalibrate(s.StereoSettings, s.StereoOutput), ""),
	}
}
