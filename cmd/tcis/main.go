package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tcis/internal/api"
	"tcis/internal/console"
	"tcis/internal/navigation"
	"tcis/internal/platform/config"
	"tcis/internal/platform/logger"
	"tcis/internal/platform/metrics"
	"tcis/internal/platform/tracer"
	"tcis/internal/printing"
	"tcis/internal/screens"
	"tcis/internal/session"
	"tcis/pkg/domain"
)

// main wires the client stack and hands the terminal to the console front end.
func main() {
	cfg := config.FromEnv()
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "citation API root")
	flag.StringVar(&cfg.EntryRole, "role", cfg.EntryRole, "auth stack to start in (police or driver)")
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request timeout, 0 for none")
	flag.Parse()
	cfg.BaseURL = config.NormalizeBaseURL(cfg.BaseURL)

	log := logger.New(cfg.LogLevel)

	entry, err := domain.ParseRole(cfg.EntryRole)
	if err != nil {
		log.Error("invalid entry role", "role", cfg.EntryRole, "error", err)
		os.Exit(2)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", "error", err)
			}
		}()
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
	}

	nav, err := navigation.New(entry, navigation.WithLogger(log), navigation.WithMetrics(m))
	if err != nil {
		log.Error("failed to build navigation graph", "error", err)
		os.Exit(1)
	}

	client := api.NewHTTPClient(cfg.BaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(log),
		api.WithMetrics(m),
		api.WithTracer(tracer.NewOTel()),
	)

	deps := screens.Deps{
		API:       client,
		Session:   session.NewStore(session.WithLogger(log), session.WithMetrics(m)),
		Navigator: nav,
		Printer:   printing.NewSpoolPrinter(cfg.PrintSpoolDir, printing.WithSpoolLogger(log)),
		Logger:    log,
		Metrics:   m,
	}

	log.Info("starting tcis", "base_url", cfg.BaseURL, "entry_role", entry.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- console.New(deps, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("console stopped", "error", err)
		}
	case <-ctx.Done():
		log.Info("interrupted")
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics shutdown failed", "error", err)
		}
	}
	log.Info("tcis stopped")
}
