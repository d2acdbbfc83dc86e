package services

import (
	"PharmaCore/models"
	"PharmaCore/repositories"
	"context"
)

type DrugService struct {
	repository *repositories.DrugRepository
}

func NewDrugService(repository *repositories.DrugRepository) *DrugService {
	return &DrugService{repository: repository}
}

func (s *DrugService) Create(ctx context.Context, drug *models.Drug) error {
	return s.repository.Create(ctx, drug)
}

func (s *DrugService) GetByID(ctx context.Context, id uint) (*models.Drug, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DrugService) GetAll(ctx context.Context) ([]models.Drug, error) {
	return s.repository.GetAll(ctx)
}

func (s *DrugService) Update(ctx context.Context, drug *models.Drug) error {
	return s.repository.Update(ctx, drug)
}

func (s *DrugService) SoftDelete(ctx context.Context, id uint) error {
	return s.repository.SoftDelete(ctx, id)
}
