package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret              string
	CorsAllowedOrigins     []string
	CSRFTrustedOrigins     []string
	RedisURL               string
	ReportCacheTTL         time.Duration
	FYRolloverSchedule     string
	AppTimezone            string
	UploadMaxBytes         int
	OrderDefaultDepartment string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file not found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	CorsAllowedOrigins = splitList(GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
	CSRFTrustedOrigins = splitList(GetEnv("CSRF_TRUSTED_ORIGINS"))
	RedisURL = GetEnv("REDIS_URL")
	ReportCacheTTL = GetDuration("REPORT_CACHE_TTL", 5*time.Minute)
	FYRolloverSchedule = GetEnv("FY_ROLLOVER_SCHEDULE", "5 0 * * *")
	AppTimezone = GetEnv("APP_TIMEZONE", "UTC")
	UploadMaxBytes = GetInt("UPLOAD_MAX_BYTES", 10*1024*1024)
	OrderDefaultDepartment = GetEnv("ORDER_DEFAULT_DEPARTMENT", "Orders")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	if RedisURL == "" {
		log.Println("[INFO] REDIS_URL not set, report cache disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s=%q is not a number, using %d", key, v, def)
	}
	return def
}

func GetBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[WARN] %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	n := *l
	n.LogLevel = level
	return &n
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && err.Error() != "record not found":
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
