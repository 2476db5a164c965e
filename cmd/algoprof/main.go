// Command algoprof runs repetition tests of memory and file operations and
// tracks their results over time.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-prof/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		logger.Fatal("Command failed", err)
	}
}
