package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/reportaudit/internal/api"
	"github.com/kiranshivaraju/reportaudit/internal/api/handler"
	mw "github.com/kiranshivaraju/reportaudit/internal/api/middleware"
	"github.com/kiranshivaraju/reportaudit/internal/audit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API on the configured loopback address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.serve(cmd.Context()); err != nil {
				a.logger.Error("server failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&a.addrOverride, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

// buildHandler wires history, provider and handlers into the API router.
func (a *app) buildHandler(ctx context.Context) (http.Handler, func(), error) {
	st, closeKV, err := a.openHistory(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc, err := a.newService(st)
	if err != nil {
		closeKV()
		return nil, nil, err
	}

	deps := api.Dependencies{
		Logger:      a.logger,
		CORSOrigins: a.cfg.Server.CORSOrigins,

		HealthHandler:        handler.NewHealthHandler(st),
		SubmitAuditHandler:   handler.NewSubmitHandler(svc),
		ListHistoryHandler:   handler.NewListHistoryHandler(st),
		GetHistoryHandler:    handler.NewGetHistoryHandler(st),
		ClearHistoryHandler:  handler.NewClearHistoryHandler(st),
		ExportHistoryHandler: handler.NewExportHistoryHandler(st, time.Now),
		ExportHandler:        handler.NewExportHandler(time.Now),
		RenderHandler:        handler.NewRenderHandler(),
		SampleHandler:        handler.NewSampleHandler(audit.NewSampler(nil)),
	}
	if a.cfg.Audit.SingleFlight {
		deps.InFlight = mw.NewInFlight(1)
	}
	return api.NewRouter(deps), closeKV, nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, closeKV, err := a.buildHandler(ctx)
	if err != nil {
		return err
	}
	defer closeKV()

	addr := a.cfg.Server.Addr
	if a.addrOverride != "" {
		addr = a.addrOverride
	}

	// Writes must outlive the slowest permitted provider call.
	var writeTimeout time.Duration
	if t := a.cfg.AI.InferenceTimeout; t > 0 {
		writeTimeout = t + 30*time.Second
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", zap.String("addr", addr), zap.String("env", a.cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutdown signal received, draining connections...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped gracefully")
	return nil
}
