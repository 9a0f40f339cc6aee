package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/mobydock/internal/api/handlers"
	apperrors "github.com/zatekoja/mobydock/pkg/errors"
)

func TestFeedAPIHandler_Feed(t *testing.T) {
	service := newStubService()
	handler := handlers.NewFeedAPIHandler(service)

	w := httptest.NewRecorder()
	handler.Feed(w, httptest.NewRequest("GET", "/api/feed?feed=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message   string `json:"message"`
		FeedCount int64  `json:"feed_count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, service.messages[0], response.Message)
	assert.Equal(t, int64(1), response.FeedCount)
}

func TestFeedAPIHandler_Feed_EmptyTable(t *testing.T) {
	service := newStubService()
	service.homeErr = apperrors.NewNotFoundError("no feedback messages stored")
	handler := handlers.NewFeedAPIHandler(service)

	w := httptest.NewRecorder()
	handler.Feed(w, httptest.NewRequest("GET", "/api/feed?feed=1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedAPIHandler_Feed_StoreError(t *testing.T) {
	service := newStubService()
	service.homeErr = errors.New("boom")
	handler := handlers.NewFeedAPIHandler(service)

	w := httptest.NewRecorder()
	handler.Feed(w, httptest.NewRequest("GET", "/api/feed", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "failed to load feed", response["error"])
}

func TestFeedAPIHandler_ListFeedback(t *testing.T) {
	service := newStubService()
	service.messages = append(service.messages, "Thanks for the meal buddy.")
	handler := handlers.NewFeedAPIHandler(service)

	w := httptest.NewRecorder()
	handler.ListFeedback(w, httptest.NewRequest("GET", "/api/feedback", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Feedback []struct {
			ID      int64  `json:"id"`
			Message string `json:"message"`
		} `json:"feedback"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, int64(2), response.Feedback[1].ID)
	assert.Equal(t, "Thanks for the meal buddy.", response.Feedback[1].Message)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthHandler(t *testing.T) {
	healthy := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{},
	})

	w := httptest.NewRecorder()
	healthy.Health(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	unhealthy := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: errors.New("dial tcp: connection refused")},
	})

	w = httptest.NewRecorder()
	unhealthy.Health(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response struct {
		Status string            `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "unavailable", response.Status)
	assert.Contains(t, response.Errors, "redis")
	assert.NotContains(t, response.Errors, "postgres")
}
