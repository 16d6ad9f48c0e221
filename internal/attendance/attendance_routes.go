package attendance

import (
	"go-absensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	SubmitRate  rate.Limit
	SubmitBurst int
}

// RegisterRoutes mounts the public form endpoints on public and the
// dashboard endpoints on protected, which must already carry AdminAuth.
func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler, cfg RouteConfig) {
	public.POST("/attendance", middleware.RateLimitByIP(cfg.SubmitRate, cfg.SubmitBurst), h.Create)
	public.GET("/attendance/check-duplicate", h.CheckDuplicate)

	attendances := protected.Group("/attendance")
	{
		attendances.GET("", h.List)
		attendances.GET("/stats", h.GetStats)
		attendances.GET("/:id", h.GetByID)
		attendances.PUT("/:id", middleware.RateLimitByAdmin(2, 10), h.Update)
		attendances.DELETE("/:id", middleware.RateLimitByAdmin(2, 10), h.Delete)
	}

	protected.GET("/admin/export", middleware.RateLimitByAdmin(0.2, 3), h.Export)
	protected.POST("/admin/clear-all", middleware.RateLimitByAdmin(0.05, 1), h.ClearAll)
}
