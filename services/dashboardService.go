package services

import (
	"PharmaCore/repositories"
	"context"
)

type DashboardService struct {
	repository *repositories.DashboardRepository
}

func NewDashboardService(repository *repositories.DashboardRepository) *DashboardService {
	return &DashboardService{repository: repository}
}

func (s *DashboardService) Get(ctx context.Context) (*repositories.Dashboard, error) {
	return s.repository.Get(ctx)
}
