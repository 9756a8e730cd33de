package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/service"
)

const (
	timeoutScanEvery = time.Second
	shutdownGrace    = 10 * time.Second
)

// serve runs the HTTP server and, when enabled, the timeout scanner until
// ctx ends or one of them fails.
func serve(ctx context.Context, srv *http.Server, manager *service.Manager, scanTimeouts bool) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if scanTimeouts {
		eg.Go(func() error {
			manager.RunTimeoutScanner(ctx, timeoutScanEvery)
			return nil
		})
	}
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logging.Info("Server shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
