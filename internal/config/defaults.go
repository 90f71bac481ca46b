package config

const (
	defaultConfigPath  = "~/.config/calibtool/config.toml"
	projectConfigName  = "calibtool.toml"
	defaultWorkDir     = "."
	defaultLogDir      = "~/.local/share/calibtool/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultToolsDirEnv = "CALIBTOOL_TOOLS_DIR"

	defaultCaptureTool         = "Capture_Video"
	defaultCapturePosesTool    = "Capture_Video_Poses"
	defaultSplitTool           = "ReadVid"
	defaultCalibrateTool       = "CV_Calib_V1"
	defaultStereoCalibrateTool = "CV_Stereo_Calib"
	defaultUndistortTool       = "CV_Undistort_Mono"
	defaultUndistortStereoTool = "CV_Undistort_Stereo"

	defaultFramerate = "30"
	defaultLeftPort  = "1"
	defaultRightPort = "0"

	defaultSplitSource    = "videos/CAP_2014923T184648.avi"
	defaultSplitOutputDir = "captures"

	defaultCalibrationSettings = "settings.xml"
	defaultLeftCalibration     = "left_calibration.xml"
	defaultRightCalibration    = "right_calibration.xml"
	defaultStereoSettings      = "stereo_settings.xml"
	defaultStereoCalibration   = "stereo_calibration.xml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			Capture:         defaultCaptureTool,
			CapturePoses:    defaultCapturePosesTool,
			Split:           defaultSplitTool,
			Calibrate:       defaultCalibrateTool,
			StereoCalibrate: defaultStereoCalibrateTool,
			Undistort:       defaultUndistortTool,
			UndistortStereo: defaultUndistortStereoTool,
		},
		Capture: Capture{
			Framerate: defaultFramerate,
			LeftPort:  defaultLeftPort,
			RightPort: defaultRightPort,
		},
		Split: Split{
			Source:    defaultSplitSource,
			OutputDir: defaultSplitOutputDir,
		},
		Calibrate: Calibrate{
			Settings:    defaultCalibrationSettings,
			LeftOutput:  defaultLeftCalibration,
			RightOutput: defaultRightCalibration,
		},
		Stereo: Stereo{
			Settings: defaultStereoSettings,
			Output:   defaultStereoCalibration,
		},
		Undistort: Undistort{
			LeftCalibration:  defaultLeftCalibration,
			RightCalibration: defaultRightCalibration,
		},
		Menu: Menu{
			ClearScreen: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
