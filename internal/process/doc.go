// Package process runs the external calibration executables.
//
// Runner launches one Invocation at a time with exec.CommandContext (an
// argument vector, never a shell string), attaches the child to the
// operator's terminal because the tools are keyboard driven, and waits for
// it to exit. Failures are tagged with services.ErrProcessLaunch when the
// binary could not be started and services.ErrProcessExit when it ran and
// returned non-zero. Nothing is retried.
//
// Tests inject an Executor through WithExecutor to assert on the resolved
// Command without spawning processes.
package process
