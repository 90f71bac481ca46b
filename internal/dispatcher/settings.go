package dispatcher

import (
	"calibtool/internal/config"
	"calibtool/internal/invocation"
)

// Settings are the fixed arguments each menu entry runs with.
type Settings struct {
	Framerate string
	LeftPort  string
	RightPort string

	SplitSource    string
	SplitOutputDir string
	Split          invocation.SplitOptions

	CalibrationSettings string
	LeftCalibration     string
	RightCalibration    string

	StereoSettings string
	StereoOutput   string

	// WorkDir anchors the split output directory; the runner starts the
	// tools in the same directory.
	WorkDir string
}

// SettingsFromConfig copies the menu defaults out of cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Framerate:      cfg.Capture.Framerate,
		LeftPort:       cfg.Capture.LeftPort,
		RightPort:      cfg.Capture.RightPort,
		SplitSource:    cfg.Split.Source,
		SplitOutputDir: cfg.Split.OutputDir,
		Split: invocation.SplitOptions{
			PoseFile:      cfg.Split.PoseFile,
			PassOutputDir: cfg.Split.PassOutputDir,
		},
		CalibrationSettings: cfg.Calibrate.Settings,
		LeftCalibration:     cfg.Calibrate.LeftOutput,
		RightCalibration:    cfg.Calibrate.RightOutput,
		StereoSettings:      cfg.Stereo.Settings,
		StereoOutput:        cfg.Stereo.Output,
		WorkDir:             cfg.Paths.WorkDir,
	}
}

// DefaultSettings returns the built-in menu defaults.
func DefaultSettings() Settings {
	cfg := config.Default()
	settings := SettingsFromConfig(&cfg)
	settings.WorkDir = ""
	return settings
}
