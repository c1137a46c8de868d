package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/venus-data/internal/adapter/http"
	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/observability"
	"github.com/couchcryptid/venus-data/internal/pipeline"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve datasets, health, and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()
	runner := pipeline.New(domain.NewGenerator(a.catalog), nil, a.logger, metrics,
		pipeline.WithDatasetCache(a.cfg.DatasetCacheSize))
	if err := runner.Warm(ctx); err != nil {
		return err
	}

	api := httpadapter.NewDatasetAPI(runner, a.catalog, a.cfg.YearRange(), metrics, a.logger)
	srv := httpadapter.NewServer(a.cfg.HTTPAddr, runner, api, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
