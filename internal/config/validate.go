package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	info, err := os.Stat(c.Paths.WorkDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("paths.work_dir %q is not a directory", c.Paths.WorkDir)
	}
	return nil
}

func (c *Config) validateTools() error {
	required := []struct {
		key   string
		value string
	}{
		{"tools.capture", c.Tools.Capture},
		{"tools.capture_poses", c.Tools.CapturePoses},
		{"tools.split", c.Tools.Split},
		{"tools.calibrate", c.Tools.Calibrate},
		{"tools.stereo_calibrate", c.Tools.StereoCalibrate},
		{"tools.undistort", c.Tools.Undistort},
		{"tools.undistort_stereo", c.Tools.UndistortStereo},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s must be set", field.key)
		}
	}
	return nil
}

// validateSplit rejects argument layouts the splitter would misread: with
// both set, the output directory lands where ReadVid expects the pose file.
func (c *Config) validateSplit() error {
	if c.Split.PoseFile != "" && c.Split.PassOutputDir {
		return errors.New("split.pass_output_dir cannot be combined with split.pose_file")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
