package handlers

import (
	"PharmaCore/middlewares"
	"PharmaCore/models"
	"PharmaCore/repositories"
	"PharmaCore/services"
	"PharmaCore/utils"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type DrugHandler struct {
	service *services.DrugService
}

func NewDrugHandler(service *services.DrugService) *DrugHandler {
	return &DrugHandler{service: service}
}

func drugFromPayload(payload models.DrugPayload) (*models.Drug, error) {
	drug := &models.Drug{
		ID:           uint(payload.ID),
		Code:         payload.Code,
		Name:         payload.Name,
		GenericName:  payload.GenericName,
		BrandName:    payload.BrandName,
		Category:     payload.Category,
		Quantity:     int(payload.Quantity),
		ReorderLevel: int(payload.ReorderLevel),
		Price:        float64(payload.Price),
		Unit:         payload.Unit,
		BatchNumber:  payload.BatchNumber,
	}
	if payload.PrescriptionRequired != nil {
		drug.PrescriptionRequired = *payload.PrescriptionRequired
	}
	if payload.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", payload.ExpiryDate)
		if err != nil {
			return nil, err
		}
		drug.ExpiryDate = &expiry
	}
	return drug, nil
}

// quantityUpdateNote explains a quantity mismatch between the submitted
// payload and the stored record. Catalog updates never move stock, so the
// handler says so instead of dropping the field without a word.
func quantityUpdateNote(requested, effective int) string {
	if requested == effective {
		return ""
	}
	return fmt.Sprintf("quantity left at %d: stock moves only through dispensing and inventory adjustments", effective)
}

func (h *DrugHandler) CreateDrug(c *gin.Context) {
	var payload models.DrugPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if err := utils.ValidateDrugPayload(payload); err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}
	drug, err := drugFromPayload(payload)
	if err != nil {
		middlewares.HttpError(c, "Invalid expiry date", 400, err)
		return
	}
	if err := h.service.Create(c, drug); err != nil {
		if errors.Is(err, repositories.ErrDrugCodeExists) {
			middlewares.HttpError(c, err.Error(), 409, err)
			return
		}
		middlewares.HttpError(c, "Failed to create drug", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"drug": drug}, 201)
}

func (h *DrugHandler) GetAllDrugs(c *gin.Context) {
	drugs, err := h.service.GetAll(c)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch drugs", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"drugs": drugs, "total": len(drugs)}, 200)
}

func (h *DrugHandler) GetDrugByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("drug_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid drug id", 400, err)
		return
	}
	drug, err := h.service.GetByID(c, uint(id))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch drug", 500, err)
		return
	}
	if drug == nil {
		middlewares.HttpError(c, "Drug not found", 404, repositories.ErrDrugNotFound)
		return
	}
	middlewares.RespondJSON(c, gin.H{"drug": drug}, 200)
}

func (h *DrugHandler) UpdateDrug(c *gin.Context) {
	var payload models.DrugPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if payload.ID <= 0 {
		middlewares.HttpError(c, "A drug id is required for update", 400, nil)
		return
	}
	if err := utils.ValidateDrugPayload(payload); err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}
	drug, err := drugFromPayload(payload)
	if err != nil {
		middlewares.HttpError(c, "Invalid expiry date", 400, err)
		return
	}
	if err := h.service.Update(c, drug); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDrugNotFound):
			middlewares.HttpError(c, "Drug not found", 404, err)
		case errors.Is(err, repositories.ErrDrugCodeExists):
			middlewares.HttpError(c, err.Error(), 409, err)
		default:
			middlewares.HttpError(c, "Failed to update drug", 500, err)
		}
		return
	}
	// The repository keeps the stored quantity; drug now carries the
	// effective value, so tell the client when their submitted one differed.
	body := gin.H{"drug": drug}
	if note := quantityUpdateNote(int(payload.Quantity), drug.Quantity); note != "" {
		body["note"] = note
	}
	middlewares.RespondJSON(c, body, 200)
}

func (h *DrugHandler) DeleteDrug(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		middlewares.HttpError(c, "A valid drug id is required", 400, err)
		return
	}
	if err := h.service.SoftDelete(c, uint(id)); err != nil {
		if errors.Is(err, repositories.ErrDrugNotFound) {
			middlewares.HttpError(c, "Drug not found", 404, err)
			return
		}
		middlewares.HttpError(c, "Failed to delete drug", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Drug deleted"}, 200)
}
