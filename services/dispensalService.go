package services

import (
	"PharmaCore/models"
	"PharmaCore/repositories"
	"context"
)

type DispensalService struct {
	repository *repositories.DispensalRepository
}

func NewDispensalService(repository *repositories.DispensalRepository) *DispensalService {
	return &DispensalService{repository: repository}
}

func (s *DispensalService) Dispense(ctx context.Context, prescriptionID uint, req models.DispenseRequest) (*repositories.DispenseResult, error) {
	return s.repository.Dispense(ctx, prescriptionID, req)
}

func (s *DispensalService) GetByNo(ctx context.Context, dispensalNo string) (*models.DrugDispensal, error) {
	return s.repository.GetByNo(ctx, dispensalNo)
}
