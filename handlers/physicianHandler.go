package handlers

import (
	"PharmaCore/middlewares"
	"PharmaCore/models"
	"PharmaCore/repositories"
	"PharmaCore/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type PhysicianHandler struct {
	service *services.PhysicianService
}

func NewPhysicianHandler(service *services.PhysicianService) *PhysicianHandler {
	return &PhysicianHandler{service: service}
}

func (h *PhysicianHandler) CreatePhysician(c *gin.Context) {
	var physician models.Physician
	if err := c.ShouldBindJSON(&physician); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	if physician.FirstName == "" || physician.LastName == "" {
		middlewares.HttpError(c, "First name and last name are required", 400, nil)
		return
	}
	if err := h.service.Create(c, &physician); err != nil {
		middlewares.HttpError(c, "Failed to create physician", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"physician": physician}, 201)
}

func (h *PhysicianHandler) GetPhysicianByID(c *gin.Context) {
	physician, err := h.service.GetByID(c, c.Param("physician_id"))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch physician", 500, err)
		return
	}
	if physician == nil {
		middlewares.HttpError(c, "Physician not found", 404, repositories.ErrPhysicianNotFound)
		return
	}
	middlewares.RespondJSON(c, gin.H{"physician": physician}, 200)
}

func (h *PhysicianHandler) GetAllPhysicians(c *gin.Context) {
	physicians, err := h.service.GetAll(c)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch physicians", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"physicians": physicians, "total": len(physicians)}, 200)
}

func (h *PhysicianHandler) UpdatePhysician(c *gin.Context) {
	var physician models.Physician
	if err := c.ShouldBindJSON(&physician); err != nil {
		middlewares.HttpError(c, "Invalid request body", 400, err)
		return
	}
	physician.ID = c.Param("physician_id")
	if err := h.service.Update(c, &physician); err != nil {
		if errors.Is(err, repositories.ErrPhysicianNotFound) {
			middlewares.HttpError(c, "Physician not found", 404, err)
			return
		}
		middlewares.HttpError(c, "Failed to update physician", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"physician": physician}, 200)
}

func (h *PhysicianHandler) DeletePhysician(c *gin.Context) {
	if err := h.service.Delete(c, c.Param("physician_id")); err != nil {
		middlewares.HttpError(c, "Failed to delete physician", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Physician deleted"}, 200)
}
