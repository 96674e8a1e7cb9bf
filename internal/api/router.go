package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/hotel-bookings-go/internal/config"
	"github.com/jengzang/hotel-bookings-go/internal/handler"
	"github.com/jengzang/hotel-bookings-go/internal/middleware"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Admin     *handler.AdminHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hotel Bookings API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, time.Minute)))
	}
	{
		api.GET("/dashboard", h.Dashboard.GetDashboard)
		api.GET("/kpis", h.Dashboard.GetKPIs)
		api.GET("/charts", h.Dashboard.GetCharts)
		api.GET("/charts/:name", h.Dashboard.GetChart)
		api.GET("/insights", h.Dashboard.GetInsights)
		api.GET("/bookings/sample", h.Dashboard.GetSample)
		api.GET("/filters", h.Dashboard.GetFilters)
		api.GET("/export.xlsx", h.Dashboard.Export)

		// 数据集管理
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminJWTSecret))
		{
			admin.POST("/reload", h.Admin.Reload)
			admin.GET("/loads", h.Admin.GetLoads)
		}
	}

	return r
}
