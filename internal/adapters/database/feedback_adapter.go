package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/mobydock/internal/domain/entities"
	"github.com/zatekoja/mobydock/internal/domain/repositories"
	"github.com/zatekoja/mobydock/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/mobydock/pkg/errors"
)

const feedbackTable = "feedback"

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Random picks one feedback row with ORDER BY RANDOM().
func (a *FeedbackAdapter) Random(ctx context.Context) (*entities.Feedback, error) {
	query, args, err := a.db.From(feedbackTable).
		Select("id", "message").
		Order(goqu.L("RANDOM()").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build random feedback query", err)
	}

	feedback, err := scanFeedback(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no feedback messages stored")
	}
	if err != nil {
		return nil, apperrors.NewExternalError("failed to get random feedback", err)
	}

	return feedback, nil
}

// Create inserts a feedback record and stores the generated ID on it.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}

	query, args, err := a.db.Insert(feedbackTable).
		Rows(goqu.Record{"message": feedback.Message}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&feedback.ID); err != nil {
		return apperrors.NewExternalError("failed to create feedback", err)
	}

	return nil
}

// List returns all feedback ordered by ID.
func (a *FeedbackAdapter) List(ctx context.Context) ([]*entities.Feedback, error) {
	query, args, err := a.db.From(feedbackTable).
		Select("id", "message").
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list feedback", err)
	}
	defer rows.Close()

	var feedback []*entities.Feedback
	for rows.Next() {
		item, err := scanFeedback(rows)
		if err != nil {
			return nil, apperrors.NewExternalError("failed to scan feedback", err)
		}
		feedback = append(feedback, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate feedback", err)
	}

	return feedback, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFeedback(row rowScanner) (*entities.Feedback, error) {
	var (
		feedback entities.Feedback
		message  sql.NullString
	)
	if err := row.Scan(&feedback.ID, &message); err != nil {
		return nil, err
	}
	feedback.Message = message.String
	return &feedback, nil
}
