package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/login-usage/internal/aggregation"
	corecfg "github.com/aevon-lab/login-usage/internal/core/config"
	"github.com/aevon-lab/login-usage/internal/metrics"
	"github.com/aevon-lab/login-usage/internal/projection"
	"github.com/aevon-lab/login-usage/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the usage API and the aggregation scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	job := newJob(cfg, st, aggregation.MultiProgress{
		aggregation.LogProgress{Job: cfg.Usage.JobName},
		m.JobProgress(cfg.Usage.JobName),
	})

	projectionSvc := projection.NewService(st.db, m)

	srv := server.New(server.Options{
		Addr:          fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Mode:          cfg.Server.Mode,
		MaxBodySizeMB: cfg.Server.MaxBodySizeMB,
		HealthChecks:  st.health,
		Gatherer:      registry,
	})
	projectionSvc.RegisterRoutes(srv.Engine)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Aggregation.Enabled {
		scheduler := aggregation.NewScheduler(cfg.Aggregation.Interval(), cfg.Aggregation.LagDays, job, m)
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
	} else {
		slog.Info("Aggregation scheduler disabled by config")
	}

	// HTTP server blocks until the context is cancelled.
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

func newJob(cfg *corecfg.Config, st *stores, progress aggregation.ProgressSink) *aggregation.Job {
	return aggregation.NewJob(st.source, st.db, st.checkpoints, progress, aggregation.JobParameter{
		Name:         cfg.Usage.JobName,
		DefaultStart: cfg.Usage.StartDate(),
		LoginPattern: cfg.Usage.LoginPattern,
		AdminUser:    cfg.Usage.AdminUser,
	})
}
