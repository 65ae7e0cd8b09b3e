package model

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Health) IsHealthy() bool {
	return h.Status == HealthStatusHealthy
}
