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

type DispensalHandler struct {
	service *services.DispensalService
}

func NewDispensalHandler(service *services.DispensalService) *DispensalHandler {
	return &DispensalHandler{service: service}
}

func (h *DispensalHandler) DispensePrescription(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("prescription_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid prescription id", 400, err)
		return
	}
	var req models.DispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if err := utils.ValidateDispenseRequest(req); err != nil {
		middlewares.HttpError(c, err.Error(), 400, err)
		return
	}
	result, err := h.service.Dispense(c, uint(id), req)
	if err != nil {
		h.respondDispenseError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{
		"dispensalNo":    result.DispensalNo,
		"prescriptionNo": result.PrescriptionNo,
		"patientName":    result.PatientName,
		"status":         result.Status,
		"totalAmount":    result.TotalAmount,
		"amountPaid":     result.AmountPaid,
		"change":         result.Change,
	}, 200)
}

// respondDispenseError maps the dispensing failure modes onto status codes.
// Plan-level violations (unknown item, short stock, re-dispense, bad
// quantity) come back as 422 so the client can show them per line.
func (h *DispensalHandler) respondDispenseError(c *gin.Context, err error) {
	var unknownItem *utils.UnknownItemError
	var duplicateItem *utils.DuplicateItemError
	var insufficient *utils.InsufficientStockError
	var alreadyDispensed *utils.ItemAlreadyDispensedError
	var invalidQuantity *utils.InvalidQuantityError
	switch {
	case errors.Is(err, repositories.ErrPrescriptionNotFound):
		middlewares.HttpError(c, "Prescription not found", 404, err)
	case errors.Is(err, repositories.ErrPrescriptionDispensed):
		middlewares.HttpError(c, err.Error(), 409, err)
	case errors.Is(err, repositories.ErrDrugNotFound):
		middlewares.HttpError(c, err.Error(), 422, err)
	case errors.As(err, &unknownItem),
		errors.As(err, &duplicateItem),
		errors.As(err, &insufficient),
		errors.As(err, &alreadyDispensed),
		errors.As(err, &invalidQuantity):
		middlewares.HttpError(c, err.Error(), 422, err)
	default:
		middlewares.HttpError(c, "Failed to dispense prescription", 500, err)
	}
}

func (h *DispensalHandler) GetDispensalByNo(c *gin.Context) {
	dispensalNo := c.Param("dispensal_no")
	dispensal, err := h.service.GetByNo(c, dispensalNo)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch dispensal", 500, err)
		return
	}
	if dispensal == nil {
		middlewares.HttpError(c, "Dispensal not found", 404, errors.New("dispensal not found"))
		return
	}
	middlewares.RespondJSON(c, gin.H{"dispensal": dispensal}, 200)
}
