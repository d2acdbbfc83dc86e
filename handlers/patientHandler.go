package handlers

import (
	"PharmaCore/middlewares"
	"PharmaCore/models"
	"PharmaCore/repositories"
	"PharmaCore/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if patient.FirstName == "" || patient.LastName == "" {
		middlewares.HttpError(c, "First name and last name are required", 400, nil)
		return
	}
	if err := h.service.Create(c, &patient); err != nil {
		middlewares.HttpError(c, "Failed to create patient", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"patient": patient}, 201)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c, c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch patient", 500, err)
		return
	}
	if patient == nil {
		middlewares.HttpError(c, "Patient not found", 404, repositories.ErrPatientNotFound)
		return
	}
	middlewares.RespondJSON(c, gin.H{"patient": patient}, 200)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch patients", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"patients": patients, "total": len(patients)}, 200)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	patient.ID = c.Param("patient_id")
	if err := h.service.Update(c, &patient); err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			middlewares.HttpError(c, "Patient not found", 404, err)
			return
		}
		middlewares.HttpError(c, "Failed to update patient", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"patient": patient}, 200)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c, c.Param("patient_id")); err != nil {
		middlewares.HttpError(c, "Failed to delete patient", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Patient deleted"}, 200)
}
