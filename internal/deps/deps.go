package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"calibtool/internal/config"
)

// Requirement defines an external executable calibtool drives.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved location when Available is true.
	Path   string
	Detail string
}

// ToolRequirements lists the calibration executables configured in cfg.
// The pose capture and undistort tools are only used by their subcommands, so
// they are reported as optional.
func ToolRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "Capture", Command: cfg.ToolPath(cfg.Tools.Capture), Description: "Menu key 1: record stereo video"},
		{Name: "Split", Command: cfg.ToolPath(cfg.Tools.Split), Description: "Menu key 2: split video into frames"},
		{Name: "Calibrate", Command: cfg.ToolPath(cfg.Tools.Calibrate), Description: "Menu key 3: single camera calibration"},
		{Name: "Stereo calibrate", Command: cfg.ToolPath(cfg.Tools.StereoCalibrate), Description: "Menu key 4: stereo calibration"},
		{Name: "Undistort", Command: cfg.ToolPath(cfg.Tools.Undistort), Description: "Rectify a mono video", Optional: true},
		{Name: "Undistort stereo", Command: cfg.ToolPath(cfg.Tools.UndistortStereo), Description: "Rectify a stereo video", Optional: true},
		{Name: "Capture with poses", Command: cfg.ToolPath(cfg.Tools.CapturePoses), Description: "Record stereo video with tracker poses", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the statuses of unavailable, non-optional
// dependencies.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
