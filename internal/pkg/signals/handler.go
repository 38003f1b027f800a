// Package signals turns termination signals into context cancellation.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/feargalr/Daedalus/internal/pkg/constants"
	"github.com/feargalr/Daedalus/internal/pkg/logger"
)

// SetupHandler cancels the provided context on SIGINT, SIGTERM, or SIGHUP.
// Returns a cleanup function that should be called when the signal handler is no longer needed
func SetupHandler(ctx context.Context, cancel context.CancelFunc) (cleanup func()) {
	sigCh := make(chan os.Signal, constants.SignalChannelBuffer)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case sig := <-sigCh:
			logger.Warn("Received signal, stopping scan", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		case <-stop:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(stop)
		<-done
	}
}

// WithShutdown derives a context from parent that is cancelled on termination signals.
// The returned stop function releases the handler and cancels the context.
func WithShutdown(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	cleanup := SetupHandler(ctx, cancel)
	return ctx, func() {
		cleanup()
		cancel()
	}
}
