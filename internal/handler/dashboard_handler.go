package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/service"
	"github.com/jengzang/hotel-bookings-go/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler handles HTTP requests for dashboard views
type DashboardHandler struct {
	service *service.DashboardService
	export  *service.ExportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService, export *service.ExportService) *DashboardHandler {
	return &DashboardHandler{service: service, export: export}
}

// bindFilter parses the hotel/year/country query parameters
func bindFilter(c *gin.Context) (models.BookingFilter, bool) {
	var query models.FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return models.BookingFilter{}, false
	}

	filter, err := query.ToFilter()
	if err != nil {
		response.BadRequest(c, "Invalid filter", err)
		return models.BookingFilter{}, false
	}
	return filter, true
}

// fail reports a service error. A dataset that cannot be loaded is a 503.
func fail(c *gin.Context, message string, err error) {
	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		response.ServiceUnavailable(c, "Dataset unavailable", err)
		return
	}
	response.InternalError(c, message, err)
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(filter)
	if err != nil {
		fail(c, "Failed to compute dashboard", err)
		return
	}

	response.Success(c, dashboard)
}

// GetKPIs handles GET /api/v1/kpis
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.service.KPIs(filter)
	if err != nil {
		fail(c, "Failed to compute KPIs", err)
		return
	}

	response.Success(c, summary)
}

// GetCharts handles GET /api/v1/charts
func (h *DashboardHandler) GetCharts(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	charts, err := h.service.Charts(filter)
	if err != nil {
		fail(c, "Failed to compute charts", err)
		return
	}

	response.Success(c, charts)
}

// GetChart handles GET /api/v1/charts/:name
func (h *DashboardHandler) GetChart(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	name := c.Param("name")
	chart, err := h.service.Chart(name, filter)
	if errors.Is(err, service.ErrUnknownChart) {
		response.NotFound(c, "Chart not found: "+name)
		return
	}
	if err != nil {
		fail(c, "Failed to compute chart", err)
		return
	}

	response.Success(c, gin.H{
		"name": name,
		"data": chart,
	})
}

// GetInsights handles GET /api/v1/insights
func (h *DashboardHandler) GetInsights(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	insights, err := h.service.Insights(filter)
	if err != nil {
		fail(c, "Failed to generate insights", err)
		return
	}

	response.Success(c, insights)
}

// GetSample handles GET /api/v1/bookings/sample
func (h *DashboardHandler) GetSample(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	var query models.LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid limit", err)
		return
	}

	rows, err := h.service.Sample(filter, query.Limit)
	if err != nil {
		fail(c, "Failed to get sample", err)
		return
	}

	response.Success(c, gin.H{
		"data":  rows,
		"total": len(rows),
	})
}

// GetFilters handles GET /api/v1/filters
func (h *DashboardHandler) GetFilters(c *gin.Context) {
	options, err := h.service.FilterOptions()
	if err != nil {
		fail(c, "Failed to get filter options", err)
		return
	}

	response.Success(c, options)
}

// Export handles GET /api/v1/export.xlsx
func (h *DashboardHandler) Export(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	data, err := h.export.Export(filter)
	if err != nil {
		fail(c, "Failed to export dashboard", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="hotel_bookings_dashboard.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
