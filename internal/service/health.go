package service

import (
	"context"
	"log/slog"

	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/repository"
)

type HealthService struct {
	healthRepository repository.HealthRepository
}

func NewHealthService(healthRepository repository.HealthRepository) *HealthService {
	return &HealthService{
		healthRepository: healthRepository,
	}
}

func (s *HealthService) Check(ctx context.Context) *model.Health {
	err := s.healthRepository.Ping(ctx)
	if err != nil {
		slog.Warn("health check failed", "error", err)
		return &model.Health{Status: model.HealthStatusUnhealthy, Database: err.Error()}
	}

	return &model.Health{Status: model.HealthStatusHealthy, Database: "connected"}
}
