package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/echoscribe/engine/internal/api"
	"github.com/echoscribe/engine/internal/config"
	"github.com/echoscribe/engine/internal/events"
	"github.com/echoscribe/engine/internal/genai"
	"github.com/echoscribe/engine/internal/ingest"
	"github.com/echoscribe/engine/internal/pipeline"
)

var version = "dev"

func main() {
	startTime := time.Now()

	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env", "", "path to .env file")
	flag.StringVar(&overrides.HTTPAddr, "addr", "", "HTTP listen address")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&overrides.WatchDir, "watch-dir", "", "drop folder to ingest recordings from")
	flag.Parse()

	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Str("model", cfg.GeminiModel).Msg("echoscribe starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := genai.NewClient(genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
	})

	history := pipeline.NewHistory(cfg.HistoryLimit)
	bus := events.NewBus(256)
	processor := pipeline.NewProcessor(model, history, bus, log)

	// Optional drop-folder ingestion
	var watcher api.WatcherSource
	if cfg.WatchDir != "" {
		fw := ingest.NewFileWatcher(processor, cfg.WatchDir, log)
		if err := fw.Start(); err != nil {
			log.Fatal().Err(err).Str("watch_dir", cfg.WatchDir).Msg("failed to start file watcher")
		}
		defer fw.Stop()
		watcher = fw
	}

	srv := api.NewServer(api.Options{
		Config:    cfg,
		Processor: processor,
		History:   history,
		Bus:       bus,
		Watcher:   watcher,
		Version:   version,
		StartTime: startTime,
		Log:       log.With().Str("component", "http").Logger(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("echoscribe stopped")
}
