// Command cutoff sums integer sequences with an early-exit threshold.
//
// Run with no arguments it prints the two built-in results:
//
//	Sum: 150
//	Large sum: 150
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/cutoff/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
