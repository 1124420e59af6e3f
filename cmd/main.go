package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/iso6709/internal/cli"
	"github.com/UnknownOlympus/iso6709/internal/config"
	"github.com/UnknownOlympus/iso6709/internal/httpapi"
	"github.com/UnknownOlympus/iso6709/internal/metrics"
	"github.com/UnknownOlympus/iso6709/internal/repository"
	"github.com/UnknownOlympus/iso6709/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	// Canceled on an interrupt signal for a graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// The cli mode owns stdout, so its logs go to stderr.
	logOutput := io.Writer(os.Stdout)
	if cfg.Mode == config.ModeCLI {
		logOutput = os.Stderr
	}
	logger := setupLogger(cfg.Env, logOutput)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	converter := service.NewConverter(logger, appMetrics)

	switch cfg.Mode {
	case config.ModeCLI:
		if err := runCLI(ctx, logger, cfg, converter); err != nil {
			log.Fatalf("Read loop failed: %v", err)
		}
	case config.ModeServe:
		var pinger httpapi.Pinger
		if cfg.Database.Configured() {
			dtb := mustConnect(ctx, cfg)
			defer dtb.Close()
			pinger = dtb
		}
		runServer(ctx, logger, httpapi.NewRouter(logger, converter, reg, pinger, cfg.AllowedOrigins), cfg.Port)
	case config.ModeNormalize:
		dtb := mustConnect(ctx, cfg)
		defer dtb.Close()

		repo := repository.NewRepository(dtb, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}

		normalizer := service.NewNormalizer(
			logger, repo, converter, appMetrics, cfg.Workers, cfg.Interval, cfg.BatchSize,
		)
		go normalizer.Run(ctx)

		runServer(ctx, logger, httpapi.NewRouter(logger, converter, reg, dtb, cfg.AllowedOrigins), cfg.Port)
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

func mustConnect(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	return dtb
}

// runCLI runs the read loop until the input ends or a signal arrives.
func runCLI(ctx context.Context, logger *slog.Logger, cfg *config.Config, converter *service.Converter) error {
	input, err := cli.OpenInput(cfg.Input)
	if err != nil {
		return err
	}
	defer input.Close()

	reader := cli.NewReader(logger, converter, cfg.Formats, input, os.Stdout)

	done := make(chan error, 1)
	go func() { done <- reader.Run(ctx) }()

	select {
	case <-ctx.Done():
		return nil
	case err = <-done:
		return err
	}
}

// runServer serves the handler on the given port until the context is canceled.
func runServer(ctx context.Context, logger *slog.Logger, handler http.Handler, port int) {
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "Starting http server", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping http server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(writeTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "Failed to shut down http server", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string, output io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(output, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(output, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(output, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(output, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
