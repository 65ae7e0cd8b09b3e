package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mementoapp/memento/internal/apperr"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", apperr.NotFound("Album not found"), http.StatusNotFound, `{"detail":"Album not found"}`},
		{"forbidden", apperr.Forbidden("You don't have access to this album"), http.StatusForbidden, `{"detail":"You don't have access to this album"}`},
		{"conflict", apperr.Conflict("Email already registered"), http.StatusBadRequest, `{"detail":"Email already registered"}`},
		{"unauthorized", apperr.Unauthorized("Could not validate credentials"), http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"invalid", apperr.Invalid("name is required"), http.StatusUnprocessableEntity, `{"detail":"name is required"}`},
		{"internal hides cause", apperr.Internal("Failed to create album", errors.New("disk I/O error")), http.StatusInternalServerError, `{"detail":"Failed to create album"}`},
		{"plain error", errors.New("sql: connection refused"), http.StatusInternalServerError, `{"detail":"Internal server error"}`},
		{"unavailable", apperr.Unavailable("Database unavailable", errors.New("ping")), http.StatusServiceUnavailable, `{"detail":"Database unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/albums/1", nil)

			Error(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestErrorUnauthorizedChallenge(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil), apperr.Unauthorized("Not authenticated"))

	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", got)
	}
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Errorf("NoContent() wrote %d %q", rec.Code, rec.Body.String())
	}
}

func TestDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Detail(rec, http.StatusMethodNotAllowed, "Method Not Allowed")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"detail":"Method Not Allowed"}` {
		t.Errorf("body = %s", got)
	}
}
