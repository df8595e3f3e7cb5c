package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cariangkot.id/internal/app"
	"cariangkot.id/internal/config"
	"cariangkot.id/internal/report"
	"github.com/getsentry/sentry-go"
)

const version = "1.0.0"

const backendProbeInterval = 30 * time.Second

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Println("Error:", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid configuration:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := report.SetupSentry(cfg.SentryDSN, cfg.Env, version); err != nil {
		logger.Error("Failed to initialize Sentry", "error", err)
	}
	defer report.FlushSentry()

	reporter := report.NewReporter(nil, cfg.Env, version)
	reporter.ConfigureScope()

	application, err := app.New(cfg, logger, reporter, app.NewPooledClient(cfg.APITimeout), version)
	if err != nil {
		reporter.ReportError(err, sentry.LevelFatal)
		report.FlushSentry()
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.StartBackendProbe(ctx, backendProbeInterval)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.APITimeout + 5*time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "backend", cfg.APIBaseURL)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		reporter.ReportError(err, sentry.LevelFatal)
		report.FlushSentry()
		logger.Error(err.Error())
		os.Exit(1)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		reporter.ReportError(err, sentry.LevelError)
	}
}
