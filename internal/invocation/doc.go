// Package invocation builds the external-process calls of the calibration
// workflow.
//
// A Builder turns an operation (capture, split, calibrate, stereo calibrate,
// and the undistort variants) plus its parameters into an Invocation: the
// executable and its positional arguments in the order the tool expects.
// Building is pure. Nothing here checks that an executable exists or that a
// port number makes sense; the tools own that validation.
package invocation
