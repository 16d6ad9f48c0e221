package activitylog

import (
	"net/http"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("activitylog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Recent(c *gin.Context) {
	var q RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("http list activity logs validation failed", zap.Error(err))
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	logs, err := h.service.Recent(c.Request.Context(), q.Limit)
	if err != nil {
		httpErr := response.Fail(c, err)
		h.logger.Warn("activity log request failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		return
	}

	response.Success(c, http.StatusOK, logs, nil)
}
