// Package config loads, normalizes, and validates calibtool configuration.
//
// It supplies the historical defaults of the calibration workflow (tool
// names, capture ports, settings and output file names), expands user paths
// including tilde shortcuts, reads TOML files, and honours the
// CALIBTOOL_TOOLS_DIR environment fallback.
//
// Argument values such as framerates and ports are forwarded to the external
// tools verbatim and are never validated here.
package config
