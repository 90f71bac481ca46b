package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains workspace and log directory configuration.
type Paths struct {
	WorkDir string `toml:"work_dir"`
	LogDir  string `toml:"log_dir"`
}

// Tools names the external executables. Names without a directory are
// resolved through PATH unless Dir is set.
type Tools struct {
	Dir             string `toml:"dir"`
	Capture         string `toml:"capture"`
	CapturePoses    string `toml:"capture_poses"`
	Split           string `toml:"split"`
	Calibrate       string `toml:"calibrate"`
	StereoCalibrate string `toml:"stereo_calibrate"`
	Undistort       string `toml:"undistort"`
	UndistortStereo string `toml:"undistort_stereo"`
}

// Capture holds the arguments forwarded to the capture tool.
type Capture struct {
	Framerate string `toml:"framerate"`
	LeftPort  string `toml:"left_port"`
	RightPort string `toml:"right_port"`
	// ROMPath is the tracker virtual SROM loaded by the pose capture tool.
	ROMPath string `toml:"rom_path"`
}

// Split holds the arguments for the frame splitting tool.
type Split struct {
	Source    string `toml:"source"`
	OutputDir string `toml:"output_dir"`
	PoseFile  string `toml:"pose_file"`
	// PassOutputDir appends OutputDir to the split arguments. The stock
	// ReadVid binary reads its second argument as the pose file, so this
	// stays off by default and cannot be combined with PoseFile.
	PassOutputDir bool `toml:"pass_output_dir"`
}

// Calibrate holds single camera calibration file names.
type Calibrate struct {
	Settings    string `toml:"settings"`
	LeftOutput  string `toml:"left_output"`
	RightOutput string `toml:"right_output"`
}

// Stereo holds stereo calibration file names.
type Stereo struct {
	Settings string `toml:"settings"`
	Output   string `toml:"output"`
}

// Undistort holds the calibration files consumed by the undistort tools.
type Undistort struct {
	LeftCalibration  string `toml:"left_calibration"`
	RightCalibration string `toml:"right_calibration"`
}

// Menu contains interactive menu behaviour.
type Menu struct {
	ClearScreen bool `toml:"clear_screen"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for calibtool.
//
// Configuration sections:
//   - Paths: workspace the tools run in and the log directory
//   - Tools: executable names of the external calibration programs
//   - Capture, Split, Calibrate, Stereo, Undistort: default arguments
//   - Menu: interactive console behaviour
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Tools     Tools     `toml:"tools"`
	Capture   Capture   `toml:"capture"`
	Split     Split     `toml:"split"`
	Calibrate Calibrate `toml:"calibrate"`
	Stereo    Stereo    `toml:"stereo"`
	Undistort Undistort `toml:"undistort"`
	Menu      Menu      `toml:"menu"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has its directory fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strings.TrimSpace(strict.String()))
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory. The work directory is left
// alone: it belongs to the operator and must already exist.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// ToolPath returns the command used to launch the named executable.
func (c *Config) ToolPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || c.Tools.Dir == "" || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(c.Tools.Dir, name)
}

// LogPath returns the log file location inside LogDir.
func (c *Config) LogPath() string {
	if c.Paths.LogDir == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "calibtool.log")
}

// LockPath returns the workspace lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "calibtool.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
