package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"buswatch/internal/config"
	"buswatch/internal/delay"
	"buswatch/internal/metrics"
	"buswatch/internal/route"
	"buswatch/internal/server"
	"buswatch/internal/transit"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// CLI flags
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.BoolVar(&cfg.ForceSimulate, "simulate", cfg.ForceSimulate, "Skip the upstream probe and serve synthetic data")
	flag.StringVar(&cfg.TransitBaseURL, "transit-url", cfg.TransitBaseURL, "Base URL of the transport.rest upstream")
	flag.Parse()

	// Context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := transit.NewClient(cfg.TransitBaseURL, logger)

	resolver := delay.NewResolver(delay.ResolverOptions{
		Client:        client,
		Stops:         route.Stops(),
		Logger:        logger,
		RouteName:     cfg.RouteName,
		ProbeQuery:    cfg.ProbeQuery,
		LookaheadMin:  cfg.LookaheadMin,
		MaxDepartures: cfg.MaxDepartures,
		ForceSimulate: cfg.ForceSimulate,
	})

	m := metrics.New()
	srv := server.New(cfg, resolver, m, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
