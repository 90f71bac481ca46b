// Package deps resolves the external calibration executables on PATH (or
// under tools.dir) and reports which are available.
package deps
