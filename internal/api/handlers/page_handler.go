package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/zatekoja/mobydock/internal/domain/entities"
	"github.com/zatekoja/mobydock/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/mobydock/pkg/errors"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

var layoutTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html"))

const emptyTableMessage = "Moby Dock has nothing to say yet. Visit /seed to give him some lines."

// PageService defines the feed operations used by the page handler.
type PageService interface {
	Home(ctx context.Context, feed bool) (*entities.FeedView, error)
	Seed(ctx context.Context) ([]*entities.Feedback, error)
}

// PageHandler serves the HTML home page and the reseed route.
type PageHandler struct {
	service        PageService
	seedLimiter    *rate.Limiter
	seedRetryAfter time.Duration
}

// NewPageHandler creates a new page handler. seedPerMinute caps /seed calls;
// zero or less means unlimited.
func NewPageHandler(service PageService, seedPerMinute int) *PageHandler {
	h := &PageHandler{service: service}
	if seedPerMinute > 0 {
		h.seedLimiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(seedPerMinute)), seedPerMinute)
		h.seedRetryAfter = time.Minute / time.Duration(seedPerMinute)
	}
	return h
}

type pageData struct {
	Message   string
	FeedCount int64
	Error     string
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Home(r.Context(), wantsFeed(r))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("Feed requested before the feedback table was seeded")
			h.render(w, r, status, pageData{Error: emptyTableMessage})
			return
		}
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to build home page")
		http.Error(w, http.StatusText(status), status)
		return
	}

	h.render(w, r, http.StatusOK, pageData{
		Message:   view.Message,
		FeedCount: view.FeedCount,
	})
}

// Seed handles GET /seed
func (h *PageHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if h.seedLimiter != nil && !h.seedLimiter.Allow() {
		err := apperrors.NewRateLimitedError("reseed rate limit exceeded")
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("Rejected reseed")
		seconds := int(math.Ceil(h.seedRetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		status := statusFor(err)
		http.Error(w, err.Message, status)
		return
	}

	if _, err := h.service.Seed(r.Context()); err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to reseed feedback")
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, data); err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to render layout")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("Client went away while writing page")
	}
}
