// Package respond writes JSON responses and maps application errors onto
// HTTP status codes. Error bodies have the shape {"detail": "..."}.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/ctxkeys"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// StatusCode maps an error kind onto its HTTP status.
func StatusCode(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindInvalid:
		return http.StatusUnprocessableEntity
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error body. Only the Message of an
// *apperr.Error reaches the client; causes are logged for internal and
// unavailable errors.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := StatusCode(kind)

	message := "Internal server error"
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	if kind == apperr.KindInternal || kind == apperr.KindUnavailable {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctxkeys.RequestID(r.Context()),
			"kind", kind.String(),
			"error", err,
		)
	}

	if kind == apperr.KindUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	Detail(w, status, message)
}

// Detail writes the {"detail": message} body every error response uses.
func Detail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Detail: message})
}
