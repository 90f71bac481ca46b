// Package sessionlock serializes calibtool sessions with a file lock so two
// operators never run the capture or calibration tools against the same
// workspace at once.
package sessionlock
