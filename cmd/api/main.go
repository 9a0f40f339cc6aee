package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/mobydock/internal/adapters/cache"
	"github.com/zatekoja/mobydock/internal/adapters/database"
	"github.com/zatekoja/mobydock/internal/api/handlers"
	"github.com/zatekoja/mobydock/internal/api/routes"
	"github.com/zatekoja/mobydock/internal/application/services"
	"github.com/zatekoja/mobydock/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/mobydock/internal/infrastructure/clients/redis"
	"github.com/zatekoja/mobydock/internal/infrastructure/observability"
	"github.com/zatekoja/mobydock/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Both stores are required; there is no degraded mode.
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()

	// Initialize adapters
	feedbackAdapter := database.NewFeedbackAdapter(pgClient)
	schemaAdapter := database.NewSchemaAdapter(pgClient)
	counterAdapter := cache.NewRedisCounterAdapter(redisClient, cfg.Redis.FeedCountKey)

	if err := schemaAdapter.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	// Initialize services
	feedService := services.NewFeedService(feedbackAdapter, schemaAdapter, counterAdapter)
	feedService.SetMetrics(metrics)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(feedService, cfg.Seed.RatePerMinute)
	feedAPIHandler := handlers.NewFeedAPIHandler(feedService)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": pgClient,
		"redis":    redisClient,
	})

	router := routes.NewRouter(pageHandler, feedAPIHandler, healthHandler, cfg.Server.AllowedOrigins, metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Server shutting down")
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
