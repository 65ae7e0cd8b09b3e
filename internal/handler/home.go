package handler

import (
	"net/http"
	"strings"

	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/respond"
)

type HomeHandler struct {
	appName string
}

func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{appName: appName}
}

func (h *HomeHandler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to " + h.appName,
	})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, apperr.NotFound("Not Found"))
}

// MethodNotAllowed answers requests to a known path with an unsupported method.
func (h *HomeHandler) MethodNotAllowed(methods []string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		respond.Detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}
