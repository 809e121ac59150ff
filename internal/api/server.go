// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the HTTP server: the middleware chain, the health
probes, and the versioned route tree that mounts every domain handler.

# Route Map

	/health                         liveness probe
	/ready                          readiness probe (postgres + redis)
	/api/v1/auth                    backend accounts
	/api/v1/information             information center (grouped content)
	/api/v1/media                   media library
	/api/v1/timeline                movement timeline
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kisanmanch/kisanmanch/internal/content/information"
	"github.com/kisanmanch/kisanmanch/internal/content/media"
	"github.com/kisanmanch/kisanmanch/internal/content/timeline"
	"github.com/kisanmanch/kisanmanch/internal/platform/config"
	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/middleware"
	"github.com/kisanmanch/kisanmanch/internal/users/auth"
)

// Handlers bundles every mounted domain handler.
type Handlers struct {
	Information *information.Handler
	Media       *media.Handler
	Timeline    *timeline.Handler
	Auth        *auth.Handler
	Health      *HealthHandler
}

// NewRouter builds the full route tree with the shared middleware chain.
//
// The context bounds the rate limiter's cleanup goroutine to the server
// lifetime.
func NewRouter(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	verifier middleware.TokenVerifier,
	handlers Handlers,
) http.Handler {
	router := chi.NewRouter()

	// ── 1. Cross-cutting middleware, outermost first.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimit(ctx))
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))

	// ── 2. Unauthenticated probes for the orchestrator.
	router.Get("/health", handlers.Health.Live)
	router.Get("/ready", handlers.Health.Ready)

	// ── 3. Versioned API; authentication is resolved once for the whole
	// subtree and individual routes enforce roles where they need them.
	router.Route("/api/v1", func(router chi.Router) {
		router.Use(middleware.Authenticate(verifier))

		router.Mount("/auth", handlers.Auth.Routes())
		router.Mount("/information", handlers.Information.Routes())
		router.Mount("/media", handlers.Media.Routes())
		router.Mount("/timeline", handlers.Timeline.Routes())
	})

	return router
}

// NewServer wraps the router in an [http.Server] with the platform timeouts.
func NewServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}
}
