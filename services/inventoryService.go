package services

import (
	"PharmaCore/models"
	"PharmaCore/repositories"
	"context"
)

type InventoryService struct {
	repository *repositories.InventoryRepository
}

func NewInventoryService(repository *repositories.InventoryRepository) *InventoryService {
	return &InventoryService{repository: repository}
}

func (s *InventoryService) ListStock(ctx context.Context, category, status, search string, page, limit int) (*repositories.StockPage, error) {
	return s.repository.ListStock(ctx, category, status, search, page, limit)
}

func (s *InventoryService) AdjustStock(ctx context.Context, req models.StockAdjustmentRequest) (*models.Drug, int, error) {
	return s.repository.AdjustStock(ctx, req)
}

func (s *InventoryService) GetMovements(ctx context.Context, drugID uint, limit int) ([]models.StockMovement, error) {
	return s.repository.GetMovements(ctx, drugID, limit)
}
