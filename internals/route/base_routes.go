package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "reporthub_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Nexus ReportHub API is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
