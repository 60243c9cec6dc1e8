package app

import (
	"os"
	"strings"

	"github.com/ruzzhdontmiss/hrms-lite/internal/attendance"
	"github.com/ruzzhdontmiss/hrms-lite/internal/employee"
	"github.com/ruzzhdontmiss/hrms-lite/internal/middleware"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects infrastructure, migrates the schema and registers all
// modules onto the router. The store handle is created once here and passed
// by reference into every repository.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, summary caching disabled")
	}

	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimitByIP(50, 100))

	router.GET("/", func(c *gin.Context) {
		c.String(200, "API is running...")
	})

	return registerModules(router, db, gormDB, rdb)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(&employee.Employee{}, &attendance.Attendance{}); err != nil {
		return err
	}

	// The outbox is driven through database/sql, outside gorm's models.
	return gormDB.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
	id uuid PRIMARY KEY,
	request_id varchar(100),
	aggregate_type varchar(50) NOT NULL,
	aggregate_id uuid NOT NULL,
	event_type varchar(100) NOT NULL,
	topic varchar(200) NOT NULL,
	payload jsonb NOT NULL,
	status varchar(20) NOT NULL DEFAULT 'pending',
	retry_count int NOT NULL DEFAULT 0,
	error_message varchar(500),
	next_retry_at timestamptz,
	processed_at timestamptz,
	created_at timestamptz NOT NULL DEFAULT NOW(),
	updated_at timestamptz NOT NULL DEFAULT NOW()
)`).Error
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Request-ID")
	return cors.New(cfg)
}
