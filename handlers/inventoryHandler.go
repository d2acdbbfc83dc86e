package handlers

import (
	"PharmaCore/middlewares"
	"PharmaCore/models"
	"PharmaCore/repositories"
	"PharmaCore/services"
	"PharmaCore/utils"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *services.InventoryService
}

func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	result, err := h.service.ListStock(c, c.Query("category"), c.Query("status"), c.Query("search"), page, limit)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch stock", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{
		"drugs":      result.Rows,
		"summary":    result.Summary,
		"categories": result.Categories,
		"total":      result.Total,
		"page":       result.Page,
		"limit":      result.Limit,
	}, 200)
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req models.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if err := utils.ValidateStockAdjustment(req); err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}
	drug, delta, err := h.service.AdjustStock(c, req)
	if err != nil {
		if errors.Is(err, repositories.ErrDrugNotFound) {
			middlewares.HttpError(c, "Drug not found", 404, err)
			return
		}
		middlewares.HttpError(c, "Failed to adjust stock", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"drug": drug, "adjustment": delta}, 200)
}

func (h *InventoryHandler) GetMovements(c *gin.Context) {
	drugID, err := strconv.ParseUint(c.Param("drug_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid drug id", 400, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	movements, err := h.service.GetMovements(c, uint(drugID), limit)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch stock movements", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"movements": movements, "total": len(movements)}, 200)
}
