package handlers

import (
	"PharmaCore/middlewares"
	"PharmaCore/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Get(c)
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch dashboard", 500, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"dashboard": dashboard}, 200)
}
