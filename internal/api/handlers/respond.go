package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/zatekoja/mobydock/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// statusFor maps an application error to the HTTP status returned for it.
func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// wantsFeed reports whether the request asks to feed the mascot. Any
// non-empty feed query value counts.
func wantsFeed(r *http.Request) bool {
	return r.URL.Query().Get("feed") != ""
}
