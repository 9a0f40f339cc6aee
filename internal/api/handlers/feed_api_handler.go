package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/mobydock/internal/domain/entities"
	"github.com/zatekoja/mobydock/internal/infrastructure/observability"
)

// FeedAPIService defines the feed operations used by the JSON API.
type FeedAPIService interface {
	Home(ctx context.Context, feed bool) (*entities.FeedView, error)
	List(ctx context.Context) ([]*entities.Feedback, error)
}

// FeedAPIHandler exposes the home view and the stored messages as JSON.
type FeedAPIHandler struct {
	service FeedAPIService
}

// NewFeedAPIHandler creates a new feed API handler.
func NewFeedAPIHandler(service FeedAPIService) *FeedAPIHandler {
	return &FeedAPIHandler{service: service}
}

// Feed handles GET /api/feed
func (h *FeedAPIHandler) Feed(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Home(r.Context(), wantsFeed(r))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			respondWithError(w, status, "no feedback messages, seed the database first")
			return
		}
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to feed")
		respondWithError(w, status, "failed to load feed")
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// ListFeedback handles GET /api/feedback
func (h *FeedAPIHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.service.List(r.Context())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to list feedback")
		respondWithError(w, statusFor(err), "failed to list feedback")
		return
	}
	if feedback == nil {
		feedback = []*entities.Feedback{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": feedback,
		"count":    len(feedback),
	})
}
