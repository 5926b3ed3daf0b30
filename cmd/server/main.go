package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/server"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting inventory client",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"backend_url", cfg.Backend.URL,
		"stub_backend", cfg.Stub.Enabled,
		"log_level", cfg.LogLevel,
	)

	opts := server.Options{
		Logger:         log,
		Backend:        repository.NewHTTPProductRepository(cfg.Backend.URL, cfg.Backend.Timeout),
		AllowedOrigins: cfg.Stub.AllowedOrigins,
		SessionTTL:     cfg.Session.TTL,
	}
	if cfg.Stub.Enabled {
		if cfg.Stub.Seed {
			opts.Stub = repository.NewSeededProductRepository()
		} else {
			opts.Stub = repository.NewInMemoryProductRepository()
		}
		log.Info("serving stub products resource", "path", "/api/products", "seeded", cfg.Stub.Seed)
	}

	handler, sessions := server.NewRouter(opts)

	// Evict idle pages in the background
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx, cfg.Session.SweepInterval)

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
