package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/mobydock/internal/adapters/database"
	"github.com/zatekoja/mobydock/internal/application/services"
	"github.com/zatekoja/mobydock/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/mobydock/internal/infrastructure/observability"
	"github.com/zatekoja/mobydock/pkg/config"
)

// seed resets the feedback table the same way GET /seed does. The counter is
// not touched, so Redis is not needed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-seed", cfg.Env, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	service := services.NewFeedService(
		database.NewFeedbackAdapter(pgClient),
		database.NewSchemaAdapter(pgClient),
		nil,
	)

	created, err := service.Seed(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		pgClient.Close()
		os.Exit(1)
	}

	for _, feedback := range created {
		log.Info().Int64("id", feedback.ID).Str("message", feedback.Message).Msg("Seeded feedback")
	}
}
