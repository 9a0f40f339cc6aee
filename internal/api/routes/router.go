package routes

import (
	"net/http"

	"github.com/zatekoja/mobydock/internal/api/handlers"
	"github.com/zatekoja/mobydock/internal/api/middleware"
	"github.com/zatekoja/mobydock/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	pageHandler    *handlers.PageHandler
	feedAPIHandler *handlers.FeedAPIHandler
	healthHandler  *handlers.HealthHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	pageHandler *handlers.PageHandler,
	feedAPIHandler *handlers.FeedAPIHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		pageHandler:    pageHandler,
		feedAPIHandler: feedAPIHandler,
		healthHandler:  healthHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Pages
	r.mux.HandleFunc("GET /{$}", r.pageHandler.Home)
	r.mux.HandleFunc("GET /seed", r.pageHandler.Seed)

	// JSON API
	if r.feedAPIHandler != nil {
		r.mux.HandleFunc("GET /api/feed", r.feedAPIHandler.Feed)
		r.mux.HandleFunc("GET /api/feedback", r.feedAPIHandler.ListFeedback)
	}

	if r.healthHandler != nil {
		r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	}

	// Observability sits directly on the mux so it sees the matched pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.Compression(handler)
	handler = middleware.NoStore(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
