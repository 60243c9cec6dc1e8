package app

import (
	"database/sql"

	"github.com/ruzzhdontmiss/hrms-lite/internal/attendance"
	"github.com/ruzzhdontmiss/hrms-lite/internal/employee"
	"github.com/ruzzhdontmiss/hrms-lite/internal/messaging/kafka"
	"github.com/ruzzhdontmiss/hrms-lite/internal/summary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, employeeRepo, outboxRepo, rdb)
	summaryService := summary.NewService(employeeRepo, attendanceRepo, rdb)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	summaryHandler := summary.NewHandler(summaryService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		summary.RegisterRoutes(api, summaryHandler)
	}

	return nil
}
