package repositories

import (
	"context"

	"github.com/zatekoja/mobydock/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	// Random returns one row chosen uniformly at random. It returns a
	// NOT_FOUND AppError when the table is empty.
	Random(ctx context.Context) (*entities.Feedback, error)

	// Create inserts a row and sets its assigned ID.
	Create(ctx context.Context, feedback *entities.Feedback) error

	// List returns every row ordered by ID.
	List(ctx context.Context) ([]*entities.Feedback, error)
}

// SchemaManager owns the relational schema.
type SchemaManager interface {
	// Migrate applies pending migrations.
	Migrate(ctx context.Context) error

	// Reset drops every table it manages and creates them again, empty.
	Reset(ctx context.Context) error
}
