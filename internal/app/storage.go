package app

import (
	"fmt"

	"go-absensi/internal/activitylog"
	"go-absensi/internal/admin"
	"go-absensi/internal/attendance"
	"go-absensi/internal/config"
	"go-absensi/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisMaxRetries = 3

// openStorage returns nil for the in-memory driver.
func openStorage(cfg config.App, logger *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return nil, nil
	case config.StoragePostgres:
		db, err = connection.ConnectGORMWithRetry(connection.PostgresConfig{
			Host:     cfg.DBHost,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Name:     cfg.DBName,
			Port:     cfg.DBPort,
			SSLMode:  cfg.DBSSLMode,
		}, cfg.DBMaxRetries)
	case config.StorageSQLite:
		db, err = connection.ConnectSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.StorageDriver))

	if err := db.AutoMigrate(&attendance.Attendance{}, &admin.Admin{}, &activitylog.ActivityLog{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

func connectRedis(addr string, logger *zap.Logger) (*redis.Client, error) {
	rdb, err := connection.ConnectRedisWithRetry(addr, redisMaxRetries)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established", zap.String("addr", addr))
	return rdb, nil
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

type repositories struct {
	attendance  attendance.Repository
	admin       admin.Repository
	activityLog activitylog.Repository
}

func newRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{
			attendance:  attendance.NewMemoryRepository(),
			admin:       admin.NewMemoryRepository(),
			activityLog: activitylog.NewMemoryRepository(),
		}
	}
	return repositories{
		attendance:  attendance.NewRepository(db),
		admin:       admin.NewRepository(db),
		activityLog: activitylog.NewRepository(db),
	}
}
