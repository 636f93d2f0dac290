// Command aeroreduce reduces wind-tunnel pressure measurements of a 2D airfoil
// into force coefficients, either as a batch tool or as an HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aeroreduce/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer infrastructure.CloseLogFile()

	root := newRootCommand(infrastructure.InitializeLogger)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "aeroreduce: %v\n", err)
		return 1
	}
	return 0
}
