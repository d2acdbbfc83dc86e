package services

import (
	"PharmaCore/models"
	"PharmaCore/repositories"
	"context"
)

type PrescriptionService struct {
	repository *repositories.PrescriptionRepository
}

func NewPrescriptionService(repository *repositories.PrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{repository: repository}
}

func (s *PrescriptionService) Create(ctx context.Context, payload models.PrescriptionPayload) (*models.Prescription, error) {
	return s.repository.Create(ctx, payload)
}

func (s *PrescriptionService) GetPending(ctx context.Context, priority, search string, page, limit int) (*repositories.PendingPage, error) {
	return s.repository.GetPending(ctx, priority, search, page, limit)
}

func (s *PrescriptionService) GetByID(ctx context.Context, id uint) (*models.Prescription, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PrescriptionService) ItemStockFlags(prescription *models.Prescription) []repositories.PendingItemView {
	return s.repository.ItemStockFlags(prescription)
}
