package dispatcher

import (
	"fmt"
	"io"
)

// Top-level menu keys.
const (
	KeyExit      = 0
	KeyCapture   = 1
	KeySplit     = 2
	KeyCalibrate = 3
	KeyStereo    = 4
)

// Camera selection keys under KeyCalibrate.
const (
	CameraKeyLeft  = 0
	CameraKeyRight = 1
)

const (
	prompt      = "-->"
	exitMessage = "Exiting the calibration tool."
)

type menuEntry struct {
	key   int
	label string
}

var menuEntries = []menuEntry{
	{KeyCapture, "capture video from camera(s)"},
	{KeySplit, "read and split frames"},
	{KeyCalibrate, "calibrate camera"},
	{KeyStereo, "stereo calibrate"},
	{KeyExit, "quit"},
}

func writeMenu(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Camera Calibration Tools")
	fmt.Fprintln(w, "Key strokes:")
	for _, entry := range menuEntries {
		fmt.Fprintf(w, "\t%d - %s\n", entry.key, entry.label)
	}
	fmt.Fprint(w, prompt)
}

func writeCameraPrompt(w io.Writer) {
	fmt.Fprintf(w, "Select which camera to calibrate (L - %d/R - %d)\n", CameraKeyLeft, CameraKeyRight)
	fmt.Fprint(w, prompt)
}
