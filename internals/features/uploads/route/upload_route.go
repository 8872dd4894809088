package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/uploads/controller"
	"reporthub_backend/internals/middlewares"
	authMiddleware "reporthub_backend/internals/middlewares/auth"
)

// UploadRoutes registers /uploads and /churches/upload.
func UploadRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUploadController(db)
	msg := constants.RoleErrorAdmin("uploads")
	limiter := middlewares.UploadRateLimiter()

	uploads := api.Group("/uploads")
	uploads.Get("/", authMiddleware.OnlyRolesSlice(msg, constants.AdminRoles), ctrl.GetUploads)
	uploads.Get("/:id", authMiddleware.OnlyRolesSlice(msg, constants.AdminRoles), ctrl.GetUploadByID)
	uploads.Post("/", middlewares.Write(msg, constants.AdminRoles, limiter, ctrl.Upload)...)

	api.Post("/churches/upload", middlewares.Write(msg, constants.AdminRoles, limiter, ctrl.UploadChurches)...)
}
