// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the Kisan Manch content API server.
//
// Startup is fail-fast: configuration, migrations, and every backing service
// (PostgreSQL, Redis, object storage, signing keys) must come up before the
// listener opens. Shutdown drains in-flight requests before closing pools.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kisanmanch/kisanmanch/internal/api"
	"github.com/kisanmanch/kisanmanch/internal/content/information"
	"github.com/kisanmanch/kisanmanch/internal/content/media"
	"github.com/kisanmanch/kisanmanch/internal/content/timeline"
	"github.com/kisanmanch/kisanmanch/internal/platform/blob/s3"
	"github.com/kisanmanch/kisanmanch/internal/platform/config"
	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/migration"
	"github.com/kisanmanch/kisanmanch/internal/platform/postgres"
	"github.com/kisanmanch/kisanmanch/internal/platform/redis"
	"github.com/kisanmanch/kisanmanch/internal/platform/sec"
	"github.com/kisanmanch/kisanmanch/internal/users/auth"
)

func main() {
	if err := run(); err != nil {
		slog.Error("startup_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Configuration and structured logging.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)

	logger.Info("server_starting",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
	)

	// ── 2. Schema migrations before any pool opens.
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// ── 3. Backing services.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	assets, err := s3.New(ctx, s3.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		UseSSL:          cfg.S3UseSSL,
		Bucket:          cfg.S3Bucket,
		BasePublicURL:   cfg.AssetBaseURL,
	}, logger)
	if err != nil {
		return err
	}

	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// ── 4. Domain services and handlers.
	informationService := information.NewService(
		information.NewPostgresRepository(pool),
		assets,
		information.NewRedisFeedCache(cache),
		logger,
	)
	mediaService := media.NewService(media.NewPostgresRepository(pool), assets, logger)
	timelineService := timeline.NewService(timeline.NewPostgresRepository(pool), assets, logger)
	authService := auth.NewService(auth.NewPostgresRepository(pool), tokens, cfg.AdminInviteCode, logger)

	handlers := api.Handlers{
		Information: information.NewHandler(informationService),
		Media:       media.NewHandler(mediaService),
		Timeline:    timeline.NewHandler(timelineService),
		Auth:        auth.NewHandler(authService),
		Health:      api.NewHealthHandler(pool, cache, logger),
	}

	// ── 5. Router and server.
	router := api.NewRouter(ctx, cfg, logger, tokens, handlers)
	server := api.NewServer(cfg, router)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server_listening", slog.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	// ── 6. Wait for shutdown signal or listener failure, then drain.
	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("server_draining")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	logger.Info("server_stopped")
	return nil
}
