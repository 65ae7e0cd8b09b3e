package handler

import (
	"net/http"

	"github.com/mementoapp/memento/internal/respond"
	"github.com/mementoapp/memento/internal/service"
)

type HealthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.healthService.Check(r.Context())

	status := http.StatusOK
	if !health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}

	respond.JSON(w, status, health)
}
