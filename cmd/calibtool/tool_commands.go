package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"calibtool/internal/config"
	"calibtool/internal/invocation"
)

func newToolCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newCaptureCommand(ctx),
		newCapturePosesCommand(ctx),
		newSplitCommand(ctx),
		newCalibrateCommand(ctx),
		newStereoCommand(ctx),
		newUndistortCommand(ctx),
		newUndistortStereoCommand(ctx),
	}
}

func newCaptureCommand(ctx *commandContext) *cobra.Command {
	var framerate, leftPort, rightPort string

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Record video from both cameras",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, ctx, func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
				flags := cmd.Flags()
				return b.Capture(
					flagOr(flags, "framerate", framerate, cfg.Capture.Framerate),
					flagOr(flags, "left-port", leftPort, cfg.Capture.LeftPort),
					flagOr(flags, "right-port", rightPort, cfg.Capture.RightPort),
				), nil
			})
		},
	}
	cmd.Flags().StringVar(&framerate, "framerate", "", "Capture frame rate (default from config)")
	cmd.Flags().StringVar(&leftPort, "left-port", "", "Left camera device port (default from config)")
	cmd.Flags().StringVar(&rightPort, "right-port", "", "Right camera device port (default from config)")
	return cmd
}

func newCapturePosesCommand(ctx *commandContext) *cobra.Command {
	var framerate, leftPort, rightPort, romPath string

	cmd := &cobra.Command{
		Use:   "capture-poses",
		Short: "Record video from both cameras with tracker poses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, ctx, func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
				flags := cmd.Flags()
				rom := flagOr(flags, "rom", romPath, cfg.Capture.ROMPath)
				if strings.TrimSpace(rom) == "" {
					return invocation.Invocation{}, errors.New("tracker ROM path required: pass --rom or set capture.rom_path")
				}
				return b.CaptureWithPoses(
					flagOr(flags, "framerate", framerate, cfg.Capture.Framerate),
					flagOr(flags, "left-port", leftPort, cfg.Capture.LeftPort),
					flagOr(flags, "right-port", rightPort, cfg.Capture.RightPort),
					rom,
				), nil
			})
		},
	}
	cmd.Flags().StringVar(&framerate, "framerate", "", "Capture frame rate (default from config)")
	cmd.Flags().StringVar(&leftPort, "left-port", "", "Left camera device port (default from config)")
	cmd.Flags().StringVar(&rightPort, "right-port", "", "Right camera device port (default from config)")
	cmd.Flags().StringVar(&romPath, "rom", "", "Tracker virtual SROM file (default capture.rom_path)")
	return cmd
}

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var source, outputDir, poseFile string
	var passOutputDir bool

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a recorded video into frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var plan invocation.SplitPlan
			return runToolWithPrepare(cmd, ctx,
				func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
					opts := invocation.SplitOptions{
						PoseFile:      flagOr(flags, "pose-file", poseFile, cfg.Split.PoseFile),
						PassOutputDir: cfg.Split.PassOutputDir,
					}
					if flags.Changed("pass-output-dir") {
						opts.PassOutputDir = passOutputDir
					}
					if err := opts.Validate(); err != nil {
						return invocation.Invocation{}, err
					}
					plan = b.SplitWithOptions(
						flagOr(flags, "source", source, cfg.Split.Source),
						flagOr(flags, "output-dir", outputDir, cfg.Split.OutputDir),
						opts,
					)
					return plan.Invocation, nil
				},
				func(cfg *config.Config) error {
					return plan.Prepare(cfg.Paths.WorkDir)
				},
			)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Video file to split (default from config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the split frames, created if missing (default from config)")
	cmd.Flags().StringVar(&poseFile, "pose-file", "", "Pose file replayed alongside the video")
	cmd.Flags().BoolVar(&passOutputDir, "pass-output-dir", false, "Forward the output directory to the split tool; ReadVid reads that slot as the pose file, so not valid with --pose-file")
	return cmd
}

func newCalibrateCommand(ctx *commandContext) *cobra.Command {
	var cameraFlag, settings, output string

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate a single camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			camera, err := invocation.ParseCamera(cameraFlag)
			if err != nil {
				return err
			}
			return runTool(cmd, ctx, func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
				flags := cmd.Flags()
				defaultOutput := cfg.Calibrate.LeftOutput
				if camera == invocation.CameraRight {
					defaultOutput = cfg.Calibrate.RightOutput
				}
				return b.Calibrate(
					flagOr(flags, "settings", settings, cfg.Calibrate.Settings),
					flagOr(flags, "output", output, defaultOutput),
					camera,
				), nil
			})
		},
	}
	cmd.Flags().StringVar(&cameraFlag, "camera", "", "Camera to calibrate (L or R)")
	cmd.Flags().StringVar(&settings, "settings", "", "Calibration settings file (default from config)")
	cmd.Flags().StringVar(&output, "output", "", "Calibration output file (default from config for the camera)")
	_ = cmd.MarkFlagRequired("camera")
	return cmd
}

func newStereoCommand(ctx *commandContext) *cobra.Command {
	var settings, output string

	cmd := &cobra.Command{
		Use:   "stereo",
		Short: "Calibrate the stereo pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, ctx, func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
				flags := cmd.Flags()
				return b.StereoCalibrate(
					flagOr(flags, "settings", settings, cfg.Stereo.Settings),
					flagOr(flags, "output", output, cfg.Stereo.Output),
				), nil
			})
		},
	}
	cmd.Flags().StringVar(&settings, "settings", "", "Stereo settings file (default from config)")
	cmd.Flags().StringVar(&output, "output", "", "Stereo calibration output file (default from config)")
	return cmd
}

func newUndistortCommand(ctx *commandContext) *cobra.Command {
	var input, output, calibration, cameraFlag string

	cmd := &cobra.Command{
		Use:   "undistort",
		Short: "Rectify a single camera video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			camera, err := invocation.ParseCamera(cameraFlag)
			if err != nil {
				return err
			}
			return runTool(cmd, ctx, func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
				defaultCalibration := cfg.Undistort.LeftCalibration
				if camera == invocation.CameraRight {
					defaultCalibration = cfg.Undistort.RightCalibration
				}
				return b.Undistort(input, output, flagOr(cmd.Flags(), "calibration", calibration, defaultCalibration)), nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Video to rectify")
	cmd.Flags().StringVar(&output, "output", "", "Rectified video path")
	cmd.Flags().StringVar(&calibration, "calibration", "", "Calibration file (default from config for --camera)")
	cmd.Flags().StringVar(&cameraFlag, "camera", "L", "Camera whose configured calibration is used (L or R)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newUndistortStereoCommand(ctx *commandContext) *cobra.Command {
	var input, output, leftCalibration, rightCalibration string

	cmd := &cobra.Command{
		Use:   "undistort-stereo",
		Short: "Rectify a side-by-side stereo video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, ctx, func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error) {
				flags := cmd.Flags()
				return b.UndistortStereo(
					input,
					output,
					flagOr(flags, "left-calibration", leftCalibration, cfg.Undistort.LeftCalibration),
					flagOr(flags, "right-calibration", rightCalibration, cfg.Undistort.RightCalibration),
				), nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Stereo video to rectify")
	cmd.Flags().StringVar(&output, "output", "", "Rectified video path")
	cmd.Flags().StringVar(&leftCalibration, "left-calibration", "", "Left calibration file (default from config)")
	cmd.Flags().StringVar(&rightCalibration, "right-calibration", "", "Right calibration file (default from config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

type buildFunc func(cfg *config.Config, b *invocation.Builder) (invocation.Invocation, error)

func runTool(cmd *cobra.Command, ctx *commandContext, build buildFunc) error {
	return runToolWithPrepare(cmd, ctx, build, nil)
}

// runToolWithPrepare builds one invocation, runs prepare, then executes it.
// Unlike the menu, a tool failure is returned so the process exits non-zero.
func runToolWithPrepare(cmd *cobra.Command, ctx *commandContext, build buildFunc, prepare func(*config.Config) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	builder, err := ctx.builder()
	if err != nil {
		return err
	}
	inv, err := build(cfg, builder)
	if err != nil {
		return err
	}

	return ctx.withSession(cmd, func(runCtx context.Context, logger *slog.Logger) error {
		if prepare != nil {
			if err := prepare(cfg); err != nil {
				return fmt.Errorf("%s: %w", inv.Operation, err)
			}
		}
		runner, err := ctx.newRunner(cmd, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Running %s\n", inv)
		return runner.Run(runCtx, inv)
	})
}

// flagOr returns the flag value when it was set explicitly, otherwise
// fallback. An explicit empty value is kept.
func flagOr(flags *pflag.FlagSet, name, value, fallback string) string {
	if flags.Changed(name) {
		return value
	}
	return fallback
}
