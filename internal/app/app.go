package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/config"
	"go-absensi/internal/middleware"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/clock"
	"go-absensi/internal/shared/i18n"
	"go-absensi/internal/shared/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// App is the assembled HTTP service and the connections it owns.
type App struct {
	Router  *gin.Engine
	Metrics *metrics.Metrics

	db  *gorm.DB
	rdb *redis.Client
}

// BuildApp wires storage, services and routes from cfg.
func BuildApp(ctx context.Context, cfg config.App, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}

	if cfg.IsProduction() && cfg.JWTSecret == config.DefaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	setDefaultLanguage(cfg.DefaultLang, logger)

	// 1. Validator: nama field dari tag json + tag kustom absensi
	apperror.Init()
	if err := attendance.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	cal, err := clock.LoadCalendar(cfg.ReportTimezone)
	if err != nil {
		return nil, err
	}

	// 2. Setup Infrastructure
	db, err := openStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connectRedis(cfg.RedisAddr, logger)
		if err != nil {
			closeDB(db)
			return nil, err
		}
	}

	a := &App{
		Metrics: metrics.New(),
		db:      db,
		rdb:     rdb,
	}
	a.Router = newRouter(cfg, a.Metrics, logger)

	// 3. Register Modules & Routes
	if err := registerModules(ctx, a, cfg, cal, logger); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func setDefaultLanguage(lang string, logger *zap.Logger) {
	tag, err := language.Parse(lang)
	if err != nil {
		logger.Warn("invalid DEFAULT_LANG, keeping Indonesian", zap.String("lang", lang), zap.Error(err))
		return
	}
	base, _ := tag.Base()
	loc, err := i18n.NewLocalizer(language.Make(base.String()), i18n.Builtin())
	if err != nil {
		logger.Warn("unsupported DEFAULT_LANG, keeping Indonesian", zap.String("lang", lang), zap.Error(err))
		return
	}
	i18n.SetDefault(loc)
}

func newRouter(cfg config.App, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.ContextLogger(logger),
		middleware.Language(),
		middleware.Metrics(m),
		cors.New(corsConfig(cfg.CORSAllowOrigins)),
	)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", "Content-Language", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			// Wildcard tidak boleh dipakai bersama credentials
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	closeDB(a.db)
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			zap.L().Warn("close redis failed", zap.Error(err))
		}
	}
}
