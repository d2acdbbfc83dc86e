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

type PrescriptionHandler struct {
	service *services.PrescriptionService
}

func NewPrescriptionHandler(service *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var payload models.PrescriptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if err := utils.ValidatePrescriptionPayload(payload); err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}
	prescription, err := h.service.Create(c, payload)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPatientNotFound):
			middlewares.HttpError(c, "Patient not found", 404, err)
		case errors.Is(err, repositories.ErrPhysicianNotFound):
			middlewares.HttpError(c, "Physician not found", 404, err)
		case errors.Is(err, repositories.ErrDrugNotFound):
			middlewares.HttpError(c, err.Error(), 422, err)
		default:
			middlewares.HttpError(c, "Failed to create prescription", 500, err)
		}
		return
	}
	middlewares.RespondJSON(c, gin.H{"prescription": prescription}, 201)
}

func (h *PrescriptionHandler) GetPendingPrescriptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	result, err := h.service.GetPending(c, c.Query("priority"), c.Query("search"), page, limit)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch pending prescriptions", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{
		"prescriptions":  result.Prescriptions,
		"priorityCounts": result.PriorityCounts,
		"total":          result.Total,
		"page":           result.Page,
		"limit":          result.Limit,
	}, 200)
}

func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("prescription_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid prescription id", 400, err)
		return
	}
	prescription, err := h.service.GetByID(c, uint(id))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch prescription", 500, err)
		return
	}
	if prescription == nil {
		middlewares.HttpError(c, "Prescription not found", 404, repositories.ErrPrescriptionNotFound)
		return
	}
	middlewares.RespondJSON(c, gin.H{
		"prescription": prescription,
		"items":        h.service.ItemStockFlags(prescription),
	}, 200)
}
