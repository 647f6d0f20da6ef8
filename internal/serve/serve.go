// Package serve runs a service's HTTP listener until its context ends.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// NewServer returns an http.Server with the timeouts used by every service.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run listens on addr and shuts down gracefully once ctx is cancelled.
func Run(ctx context.Context, service, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return RunListener(ctx, service, ln, h)
}

// RunListener is Run on an already bound listener.
func RunListener(ctx context.Context, service string, ln net.Listener, h http.Handler) error {
	srv := NewServer(ln.Addr().String(), h)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info(service+" server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info(service+" server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
