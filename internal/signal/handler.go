// Package signal provides signal handling for graceful shutdown of the
// triage-loop CLI.
//
// SetupSignalHandler registers handlers for SIGINT and SIGTERM. The first
// signal calls the onInterrupt callback (if non-nil) and cancels the context
// so the current cycle can wind down; a second signal exits immediately.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ForceExitCode is the exit code used when a second interrupt arrives before
// the loop has finished winding down.
const ForceExitCode = 130

// SetupSignalHandler registers SIGINT and SIGTERM handlers.
// When a signal is received, it calls the onInterrupt callback (if non-nil),
// then cancels the context. A second signal forces an immediate exit.
//
// This function starts a goroutine that listens for signals. The goroutine
// terminates when the context is canceled before any signal arrives; after a
// first signal it stays armed for the force-exit path until the process ends.
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
			return
		}

		// Second signal: do not wait for the cycle to finish. The context
		// is already canceled at this point, so only the signal channel can
		// be waited on here.
		<-sigCh
		os.Exit(ForceExitCode)
	}()
}
