package invocation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation names one of the calibration workflow steps.
type Operation string

const (
	OperationCapture         Operation = "capture"
	OperationCapturePoses    Operation = "capture-poses"
	OperationSplit           Operation = "split"
	OperationCalibrate       Operation = "calibrate"
	OperationStereoCalibrate Operation = "stereo-calibrate"
	OperationUndistort       Operation = "undistort"
	OperationUndistortStereo Operation = "undistort-stereo"
)

func (o Operation) String() string { return string(o) }

// Camera is the label the calibrate tool uses to prefix its output.
type Camera string

const (
	CameraLeft  Camera = "L"
	CameraRight Camera = "R"
)

var upper = cases.Upper(language.Und)

// ParseCamera accepts L/R in either case as well as the spelled-out names.
func ParseCamera(value string) (Camera, error) {
	switch upper.String(strings.TrimSpace(value)) {
	case "L", "LEFT":
		return CameraLeft, nil
	case "R", "RIGHT":
		return CameraRight, nil
	default:
		return "", fmt.Errorf("camera %q: expected L or R", value)
	}
}

// Name returns the human readable camera side.
func (c Camera) Name() string {
	switch c {
	case CameraLeft:
		return "left"
	case CameraRight:
		return "right"
	default:
		return string(c)
	}
}
