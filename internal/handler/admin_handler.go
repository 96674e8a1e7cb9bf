package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/service"
	"github.com/jengzang/hotel-bookings-go/pkg/response"
)

// AdminHandler handles dataset administration requests
type AdminHandler struct {
	service *service.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *service.DashboardService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Reload handles POST /api/v1/admin/reload
func (h *AdminHandler) Reload(c *gin.Context) {
	report, err := h.service.Reload()
	if err != nil {
		fail(c, "Failed to reload dataset", err)
		return
	}

	response.Success(c, report)
}

// GetLoads handles GET /api/v1/admin/loads
func (h *AdminHandler) GetLoads(c *gin.Context) {
	var query models.LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid limit", err)
		return
	}

	loads, err := h.service.LoadHistory(query.Limit)
	if err != nil {
		response.InternalError(c, "Failed to get load history", err)
		return
	}

	response.Success(c, gin.H{
		"data":  loads,
		"total": len(loads),
	})
}
