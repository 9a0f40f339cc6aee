package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/mobydock/internal/domain/repositories"
	"github.com/zatekoja/mobydock/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/mobydock/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const dropFeedbackTable = `DROP TABLE IF EXISTS "` + feedbackTable + `"`

// SchemaAdapter manages the feedback schema with the embedded migrations.
type SchemaAdapter struct {
	client *postgres.Client
}

// NewSchemaAdapter creates a new schema adapter.
func NewSchemaAdapter(client *postgres.Client) repositories.SchemaManager {
	return &SchemaAdapter{client: client}
}

// Migrate applies every pending up migration.
func (a *SchemaAdapter) Migrate(ctx context.Context) error {
	return a.run(ctx, func(m *migrate.Migrate) error {
		return ignoreNoChange(m.Up())
	})
}

// Reset runs all down migrations, drops the feedback table even when the
// migrations never tracked it, and then runs all up migrations, leaving an
// empty table.
func (a *SchemaAdapter) Reset(ctx context.Context) error {
	return a.run(ctx, func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, dropFeedbackTable); err != nil {
			return fmt.Errorf("drop untracked feedback table: %w", err)
		}
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	})
}

// run hands fn a migrator bound to a dedicated connection. Closing the
// migrator returns that connection to the pool and leaves the pool open.
func (a *SchemaAdapter) run(ctx context.Context, fn func(m *migrate.Migrate) error) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return apperrors.NewInternalError("failed to open migration source", err)
	}

	conn, err := a.client.DB().Conn(ctx)
	if err != nil {
		return apperrors.NewExternalError("failed to acquire migration connection", err)
	}

	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		conn.Close()
		return apperrors.NewExternalError("failed to create migration driver", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		driver.Close()
		return apperrors.NewInternalError("failed to create migrator", err)
	}
	m.Log = migrationLogger{}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("Failed to close migrator")
		}
	}()

	if err := fn(m); err != nil {
		return apperrors.NewExternalError("schema migration failed", err)
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// migrationLogger routes migrate's output to zerolog.
type migrationLogger struct{}

func (migrationLogger) Printf(format string, v ...interface{}) {
	log.Debug().Str("component", "migrate").Msgf(format, v...)
}

func (migrationLogger) Verbose() bool {
	return false
}
