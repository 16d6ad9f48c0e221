package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-signing-secret-change"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env  string
	Port string

	StorageDriver string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	DBMaxRetries  int
	SQLitePath    string

	RedisAddr     string
	StatsCacheTTL time.Duration

	JWTSecret      string
	AccessTokenTTL time.Duration

	ReportTimezone string
	DefaultLang    string

	SeedAdminUsername string
	SeedAdminPassword string

	SubmitRatePerSec float64
	SubmitRateBurst  int
	LoginRatePerSec  float64
	LoginRateBurst   int

	CORSAllowOrigins []string
}

func (a App) IsProduction() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Load reads .env (when present) and the environment, falling back to
// defaults for anything unset or malformed.
func Load() App {
	_ = godotenv.Load()

	return App{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "3000"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "absensi"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBMaxRetries:  intEnv("DB_MAX_RETRIES", 5),
		SQLitePath:    getEnv("SQLITE_PATH", "data/absensi.db"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		StatsCacheTTL: durationEnv("STATS_CACHE_TTL", 10*time.Second),

		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		AccessTokenTTL: durationEnv("ACCESS_TOKEN_TTL", 24*time.Hour),

		ReportTimezone: getEnv("REPORT_TIMEZONE", "Asia/Jakarta"),
		DefaultLang:    getEnv("DEFAULT_LANG", "id"),

		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),

		SubmitRatePerSec: floatEnv("SUBMIT_RATE_PER_SEC", 0.5),
		SubmitRateBurst:  intEnv("SUBMIT_RATE_BURST", 5),
		LoginRatePerSec:  floatEnv("LOGIN_RATE_PER_SEC", 0.1),
		LoginRateBurst:   intEnv("LOGIN_RATE_BURST", 5),

		CORSAllowOrigins: listEnv("CORS_ALLOW_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			zap.L().Warn("invalid duration, using fallback", zap.String("key", key), zap.Duration("fallback", fallback), zap.Error(err))
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			zap.L().Warn("invalid int, using fallback", zap.String("key", key), zap.Int("fallback", fallback))
			return fallback
		}
		return parsed
	}
	return fallback
}

func floatEnv(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			zap.L().Warn("invalid float, using fallback", zap.String("key", key), zap.Float64("fallback", fallback))
			return fallback
		}
		return parsed
	}
	return fallback
}

func listEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
