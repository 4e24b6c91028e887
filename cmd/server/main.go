// Package main is the entry point for the semembed embedding server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/semembed/semembed/internal/api"
	"github.com/semembed/semembed/internal/config"
	"github.com/semembed/semembed/internal/engine"
	"github.com/semembed/semembed/internal/metrics"
	"github.com/semembed/semembed/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	// Bootstrap logger; level and format are re-derived from config below.
	logger := observability.NewLogger(observability.LoggerConfig{
		Level:      "info",
		JSONFormat: true,
	})

	logger.Info("starting semembed service")

	cfgManager, err := config.NewManager(*configPath, logger.Logger)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := cfgManager.Get()

	logger = observability.NewLogger(observability.LoggerConfig{
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.Format != "text",
	})

	// Log level follows the config file; everything else needs a restart.
	cfgManager.OnChange(func(next *config.Config) {
		logger.SetLevel(next.Logging.Level)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *configPath != "" {
		if err := cfgManager.Watch(ctx); err != nil {
			logger.Warn("config hot-reload disabled", "error", err)
		}
	}

	logger.Info("loading embedding model", "model", cfg.Engine.Model, "backend", cfg.Engine.Backend)

	eng, err := engine.Load(ctx, engine.Options{
		Model:      cfg.Engine.Model,
		Backend:    cfg.Engine.Backend,
		RuntimeURL: cfg.Engine.RuntimeURL,
		Timeout:    cfg.Engine.Timeout,
	}, logger.Logger)
	if err != nil {
		logger.Error("failed to load embedding model", "error", err)
		os.Exit(1)
	}
	logger.Info("model loaded successfully", "model", eng.ModelName())

	tracerProvider, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRate:  cfg.Tracing.SampleRate,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	handler := api.NewHandler(engine.NewGate(eng), m, logger.Logger, &api.HandlerConfig{
		MaxBodySize: cfg.Server.MaxBodySize,
		Tracer:      tracerProvider.Tracer(),
	})

	mux := buildMux(cfg, handler, m.Handler())

	var httpHandler http.Handler = mux
	httpHandler = corsMiddleware(httpHandler)
	httpHandler = observability.RequestIDMiddleware(httpHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("tracer shutdown error", "error", err)
	}

	_ = cfgManager.Close()
	logger.Info("server stopped")
}
