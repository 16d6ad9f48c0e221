package app

import (
	"context"
	"fmt"

	"go-absensi/internal/activitylog"
	"go-absensi/internal/admin"
	"go-absensi/internal/attendance"
	"go-absensi/internal/config"
	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	ctx context.Context,
	a *App,
	cfg config.App,
	cal clock.Calendar,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	repos := newRepositories(a.db)

	// --- Services ---
	tokens := admin.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, clock.System)
	activityService := activitylog.NewService(repos.activityLog, clock.System, logger)
	adminService := admin.NewService(repos.admin, tokens, activityService, a.Metrics, clock.System, logger)
	attendanceService := attendance.NewService(
		repos.attendance,
		cal,
		a.rdb,
		cfg.StatsCacheTTL,
		activityService,
		a.Metrics,
		logger,
	)

	if err := adminService.EnsureSeed(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	// --- Handlers ---
	activityHandler := activitylog.NewHandler(activityService, logger)
	adminHandler := admin.NewHandler(adminService, tokens, cfg.IsProduction(), logger)
	attendanceHandler := attendance.NewHandler(attendanceService, a.Metrics, logger)

	// --- Routes Registration ---
	router := a.Router
	router.GET("/healthz", healthHandler(a))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	protected := api.Group("", middleware.AdminAuth(tokens))
	{
		admin.RegisterRoutes(api, protected, adminHandler, admin.RouteConfig{
			LoginRate:  rate.Limit(cfg.LoginRatePerSec),
			LoginBurst: cfg.LoginRateBurst,
		})
		attendance.RegisterRoutes(api, protected, attendanceHandler, attendance.RouteConfig{
			SubmitRate:  rate.Limit(cfg.SubmitRatePerSec),
			SubmitBurst: cfg.SubmitRateBurst,
		})
		activitylog.RegisterRoutes(protected, activityHandler)
	}

	return nil
}
