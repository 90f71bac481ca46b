// Package dispatcher implements the interactive calibration menu.
//
// A Dispatcher prints the menu, reads one integer key per prompt from an
// injected reader, and maps it to a Command Builder call:
//
//	1  capture video from both cameras
//	2  split a recorded video into frames (output directory created first)
//	3  calibrate one camera, after a sub-prompt choosing 0 (left) or 1 (right)
//	4  stereo calibrate
//	0  quit
//
// Unmatched keys and non-integer input are explicit no-ops that bring the
// menu back. Tool failures are printed as warnings and never end the session;
// only key 0, end of input, or context cancellation do.
package dispatcher
