// Package main hosts the calibtool CLI entrypoint and command graph.
//
// Running calibtool with no subcommand starts the interactive menu. The
// one-shot subcommands (capture, capture-poses, split, calibrate, stereo,
// undistort, undistort-stereo) run a single tool with flag overrides and exit
// with the tool's status, which makes them usable from scripts. plan and check are
// read-only reports.
//
// Keep this package lean: behaviour lives in internal/dispatcher and
// internal/invocation, and commands here only wire configuration, logging,
// and the workspace lock around them.
package main
