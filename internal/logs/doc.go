// Package logs reads the calibtool log file for the "calibtool logs" command.
//
// Last returns the trailing lines with bounded memory; Follow polls for
// appended lines until its context is cancelled. Both accept an optional
// Filter, typically SessionFilter to isolate one menu session.
package logs
