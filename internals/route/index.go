package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"reporthub_backend/internals/configs"
	userService "reporthub_backend/internals/features/users/user/service"
	"reporthub_backend/internals/helpers/cache"
	"reporthub_backend/internals/middlewares"
	authMiddleware "reporthub_backend/internals/middlewares/auth"
	routeDetails "reporthub_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	reportCache := cache.New(rdb, "reporthub:reports")

	// ===================== API (JWT) =====================
	log.Println("[INFO] Setting up API group (Auth + rate limit + report cache invalidation)...")
	api := app.Group("/api",
		middlewares.GlobalRateLimiter(),
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			IdentityResolver:    userService.IdentityResolver(db),
			AllowCookieFallback: true,
		}),
		middlewares.InvalidateOnWrite(reportCache),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Organization routes...")
	routeDetails.OrganizationRoutes(api, db)

	log.Println("[INFO] Mounting Catalog routes...")
	routeDetails.CatalogRoutes(api, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceRoutes(api, db)

	log.Println("[INFO] Mounting Upload & Report routes...")
	routeDetails.ReportRoutes(api, db, reportCache)
}
