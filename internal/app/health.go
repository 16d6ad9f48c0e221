package app

import (
	"context"
	"net/http"
	"time"

	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

type healthStatus struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Checked time.Time         `json:"checkedAt"`
}

func healthHandler(a *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := healthStatus{Status: "ok", Checks: map[string]string{}, Checked: time.Now().UTC()}

		if a.db != nil {
			status.Checks["database"] = "ok"
			sqlDB, err := a.db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				status.Status = "degraded"
				status.Checks["database"] = err.Error()
			}
		} else {
			status.Checks["database"] = "memory"
		}

		if a.rdb != nil {
			status.Checks["redis"] = "ok"
			if err := a.rdb.Ping(ctx).Err(); err != nil {
				// stats tetap jalan tanpa cache
				status.Checks["redis"] = err.Error()
			}
		}

		code := http.StatusOK
		if status.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, status, nil)
	}
}
