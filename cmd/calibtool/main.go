package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"calibtool/internal/process"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode forwards a failed tool's own exit status from the one-shot
// subcommands; everything else exits 1.
func exitCode(err error) int {
	if code, ok := process.ExitCode(err); ok && code > 0 {
		return code
	}
	return 1
}
