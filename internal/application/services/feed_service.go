package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/mobydock/internal/domain/entities"
	"github.com/zatekoja/mobydock/internal/domain/providers"
	"github.com/zatekoja/mobydock/internal/domain/repositories"
	"github.com/zatekoja/mobydock/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// SeedMessages are inserted, in this order, by every reseed.
var SeedMessages = []string{
	"Thanks good sir. I'm feeling quite healthy!",
	"Thanks for the meal buddy.",
	"Please stop feeding me. I'm getting huge!",
}

// FeedService implements the home and seed views on top of the two stores.
type FeedService struct {
	repo    repositories.FeedbackRepository
	schema  repositories.SchemaManager
	counter providers.FeedCounter
	metrics *observability.Metrics
}

// NewFeedService creates a new feed service.
func NewFeedService(repo repositories.FeedbackRepository, schema repositories.SchemaManager, counter providers.FeedCounter) *FeedService {
	return &FeedService{
		repo:    repo,
		schema:  schema,
		counter: counter,
	}
}

// SetMetrics enables feed, seed and store metrics.
func (s *FeedService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Home returns what the home page shows. When feed is true a random message
// is picked and the counter is incremented; otherwise the message is empty and
// the counter is only read. The counter is left alone when no message exists.
func (s *FeedService) Home(ctx context.Context, feed bool) (*entities.FeedView, error) {
	ctx, span := observability.StartSpan(ctx, "FeedService.Home")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.Bool("mobydock.feed", feed))

	if !feed {
		start := time.Now()
		count, err := s.counter.Current(ctx)
		s.observe(ctx, "redis", "get", start)
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		return &entities.FeedView{FeedCount: count}, nil
	}

	start := time.Now()
	feedback, err := s.repo.Random(ctx)
	s.observe(ctx, "postgres", "random", start)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	start = time.Now()
	count, err := s.counter.Increment(ctx)
	s.observe(ctx, "redis", "incr", start)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.RecordFeed(ctx, s.metrics)
	observability.SetSpanAttributes(span,
		attribute.Int64("mobydock.feedback_id", feedback.ID),
		attribute.Int64("mobydock.feed_count", count),
	)

	return &entities.FeedView{
		Message:   feedback.Message,
		FeedCount: count,
	}, nil
}

// Seed drops and recreates the feedback schema, then inserts SeedMessages one
// statement at a time. It returns the rows it created.
func (s *FeedService) Seed(ctx context.Context) ([]*entities.Feedback, error) {
	ctx, span := observability.StartSpan(ctx, "FeedService.Seed")
	defer span.End()

	start := time.Now()
	err := s.schema.Reset(ctx)
	s.observe(ctx, "postgres", "reset", start)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("reset feedback schema: %w", err)
	}

	created := make([]*entities.Feedback, 0, len(SeedMessages))
	for _, message := range SeedMessages {
		feedback := &entities.Feedback{Message: message}

		start := time.Now()
		err := s.repo.Create(ctx, feedback)
		s.observe(ctx, "postgres", "insert", start)
		if err != nil {
			observability.RecordError(span, err)
			return nil, fmt.Errorf("seed feedback %q: %w", message, err)
		}
		created = append(created, feedback)
	}

	observability.RecordSeed(ctx, s.metrics)
	observability.LoggerFromContext(ctx).Info().Int("rows", len(created)).Msg("Feedback table reseeded")

	return created, nil
}

// List returns the stored feedback ordered by ID.
func (s *FeedService) List(ctx context.Context) ([]*entities.Feedback, error) {
	ctx, span := observability.StartSpan(ctx, "FeedService.List")
	defer span.End()

	start := time.Now()
	feedback, err := s.repo.List(ctx)
	s.observe(ctx, "postgres", "list", start)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.SetSpanAttributes(span, attribute.Int("mobydock.feedback_rows", len(feedback)))
	return feedback, nil
}

func (s *FeedService) observe(ctx context.Context, store, operation string, start time.Time) {
	observability.RecordStoreMetric(ctx, s.metrics, store, operation, time.Since(start))
}
