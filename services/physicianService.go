package services

import (
	"PharmaCore/models"
	"PharmaCore/repositories"
	"context"
)

type PhysicianService struct {
	repository *repositories.PhysicianRepository
}

func NewPhysicianService(repository *repositories.PhysicianRepository) *PhysicianService {
	return &PhysicianService{repository: repository}
}

func (s *PhysicianService) Create(ctx context.Context, physician *models.Physician) error {
	return s.repository.Create(ctx, physician)
}

func (s *PhysicianService) GetByID(ctx context.Context, id string) (*models.Physician, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PhysicianService) GetAll(ctx context.Context) ([]models.Physician, error) {
	return s.repository.GetAll(ctx)
}

func (s *PhysicianService) Update(ctx context.Context, physician *models.Physician) error {
	return s.repository.Update(ctx, physician)
}

func (s *PhysicianService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
