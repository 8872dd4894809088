package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"reporthub_backend/internals/configs"
)

// CorsMiddleware allows the admin UI origins from CORS_ALLOWED_ORIGINS.
func CorsMiddleware() fiber.Handler {
	origins := configs.CorsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, X-Response-Time",
		AllowCredentials: true,
	})
}
