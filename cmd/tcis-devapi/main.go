package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tcis/internal/api/apitest"
	"tcis/internal/platform/health"
	"tcis/internal/platform/logger"
	"tcis/internal/platform/middleware"
)

// main serves the in-memory citation backend for local runs of the client.
func main() {
	addr := flag.String("addr", ":8000", "listen address")
	seed := flag.Bool("seed", true, "create the demo officer, driver and tickets")
	strict := flag.Bool("strict-roles", false, "reject logins whose role does not match the account")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	timeout := flag.Duration("handler-timeout", 30*time.Second, "per-request handler timeout")
	flag.Parse()

	log := logger.New(*level)

	opts := []apitest.Option{apitest.WithLogger(log)}
	if *strict {
		opts = append(opts, apitest.WithStrictRoles())
	}
	backend := apitest.New(opts...)
	if *seed {
		if err := backend.SeedDemo(); err != nil {
			log.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		log.Info("seeded demo accounts",
			"officer", apitest.DemoOfficerHandle,
			"driver", apitest.DemoDriverHandle,
			"password", apitest.DemoPassword,
		)
	}

	h := health.New("tcis-devapi")
	h.RegisterCheck("violations", func() error {
		if len(backend.Violations()) == 0 {
			return errors.New("violation catalog is empty")
		}
		return nil
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := chi.NewRouter()
	r.Use(middleware.Latency(middleware.NewMetrics(reg)))
	r.Use(middleware.Timeout(*timeout))
	h.Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", backend.Router())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("starting dev api", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down dev api gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("dev api stopped")
}
