// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
	"github.com/kisanmanch/kisanmanch/internal/platform/postgres"
	"github.com/kisanmanch/kisanmanch/internal/platform/redis"
	"github.com/kisanmanch/kisanmanch/internal/platform/respond"
)

// healthCheckTimeout bounds each dependency probe so a hung backend cannot
// stall the orchestrator's readiness loop.
const healthCheckTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	pool   *pgxpool.Pool
	cache  *goredis.Client
	logger *slog.Logger
}

// NewHealthHandler creates the probe handler.
func NewHealthHandler(pool *pgxpool.Pool, cache *goredis.Client, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pool: pool, cache: cache, logger: logger}
}

// Live reports that the process is up. It never touches dependencies.
func (handler *HealthHandler) Live(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// Ready reports whether the server can actually serve traffic: both the
// database and the cache must answer a ping within the probe timeout.
func (handler *HealthHandler) Ready(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{"postgres": "ok", "redis": "ok"}
	healthy := true

	if err := postgres.Ping(ctx, handler.pool); err != nil {
		checks["postgres"] = "unreachable"
		healthy = false
		handler.logger.ErrorContext(ctx, "readiness_postgres_failed", slog.String("error", err.Error()))
	}
	if err := redis.Ping(ctx, handler.cache); err != nil {
		checks["redis"] = "unreachable"
		healthy = false
		handler.logger.ErrorContext(ctx, "readiness_redis_failed", slog.String("error", err.Error()))
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respond.JSON(writer, code, respond.SuccessEnvelope{
		Success: healthy,
		Data: map[string]interface{}{
			constants.FieldStatus: status,
			constants.FieldChecks: checks,
		},
	})
}
