package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() error {
	if strings.TrimSpace(c.Tools.Dir) == "" {
		if value, ok := os.LookupEnv(defaultToolsDirEnv); ok {
			c.Tools.Dir = value
		}
	}
	dir := strings.TrimSpace(c.Tools.Dir)
	if dir != "" {
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("tools.dir: %w", err)
		}
		dir = expanded
	}
	c.Tools.Dir = dir
	c.Tools.Capture = strings.TrimSpace(c.Tools.Capture)
	c.Tools.CapturePoses = strings.TrimSpace(c.Tools.CapturePoses)
	c.Tools.Split = strings.TrimSpace(c.Tools.Split)
	c.Tools.Calibrate = strings.TrimSpace(c.Tools.Calibrate)
	c.Tools.StereoCalibrate = strings.TrimSpace(c.Tools.StereoCalibrate)
	c.Tools.Undistort = strings.TrimSpace(c.Tools.Undistort)
	c.Tools.UndistortStereo = strings.TrimSpace(c.Tools.UndistortStereo)
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
