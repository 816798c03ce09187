package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coverwatch/dashboard/internal/api"
	"github.com/coverwatch/dashboard/internal/config"
	"github.com/coverwatch/dashboard/internal/dashboard"
	"github.com/coverwatch/dashboard/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var client api.Client
	if cfg.UseMock {
		log.Println("Using MOCK summary client (USE_MOCK=true)")
		client = api.NewMockClient()
	} else {
		log.Printf("Polling verification API: %s", cfg.APIBaseURL)
		real := api.NewRealClient(cfg.APIBaseURL, cfg.APIToken)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := real.HealthCheck(ctx); err != nil {
			log.Printf("Warning: verification API not reachable yet: %v", err)
		} else {
			log.Println("✓ Connected to verification API")
		}
		cancel()

		client = real
	}

	ctrl := dashboard.NewController(client, cfg.PollInterval)

	pollCtx, stopPolling := context.WithCancel(context.Background())
	go ctrl.Start(pollCtx)

	rootDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get current working directory: %v", err)
	}

	srv := server.NewServer(ctrl, rootDir)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down...", sig)

		stopPolling()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting Coverage Dashboard on %s", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
	log.Println("Server stopped.")
}
