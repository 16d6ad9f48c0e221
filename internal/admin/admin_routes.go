package admin

import (
	"go-absensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	LoginRate  rate.Limit
	LoginBurst int
}

// RegisterRoutes mounts /admin on r. protected must already carry AdminAuth.
func RegisterRoutes(r *gin.RouterGroup, protected *gin.RouterGroup, handler *Handler, cfg RouteConfig) {
	r.POST("/admin/login", middleware.RateLimitByIP(cfg.LoginRate, cfg.LoginBurst), handler.Login)
	r.POST("/admin/logout", handler.Logout)

	protected.GET("/admin/me", handler.Me)
}
