package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"median-probe/internal/sampler"
)

func main() {
	level := setupLogging(os.Stdout)

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	registerMetrics(prometheus.DefaultRegisterer)

	s, err := sampler.New(cfg.Sampler, cfg.Targets, record)
	if err != nil {
		slog.Error("failed to build sampler", "error", err)
		os.Exit(1)
	}

	targets := make([]string, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		targets = append(targets, t.String())
	}
	slog.Info("starting median-probe",
		"targets", targets,
		"window_size", cfg.Sampler.WindowSize,
		"sample_interval", cfg.Sampler.Interval.String(),
		"probe_timeout", cfg.Sampler.Timeout.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, s); err != nil {
		slog.Error("metrics server failed", "error", err)
		os.Exit(1)
	}
}

// setupLogging installs a JSON default logger at info level and returns the
// level so it can be raised or lowered once config is known.
func setupLogging(w io.Writer) *slog.LevelVar {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
	return level
}

// run samples and serves metrics until ctx is done or the metrics server
// fails. A server failure is returned after sampling has stopped.
func run(ctx context.Context, cfg Config, s *sampler.Sampler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	httpServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("metrics server listening", "addr", cfg.MetricsAddr, "path", "/metrics")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("listen on %s: %w", cfg.MetricsAddr, err)
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Error("metrics server shutdown failed", "error", shutdownErr)
	}
	<-done
	return err
}

func routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
