// Package preflight provides readiness checks for the calibration workspace
// and the external tools calibtool drives.
//
// These checks back the "calibtool check" command. They only report: the
// menu never refuses to start because a check failed, since the operator may
// be about to produce the missing file (the split source, for example, is
// written by the capture tool).
package preflight
