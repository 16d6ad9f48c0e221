package activitylog

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be behind admin authentication already.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/admin/activity-logs", handler.Recent)
}
