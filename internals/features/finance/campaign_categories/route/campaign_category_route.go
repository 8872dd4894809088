package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/finance/campaign_categories/controller"
	"reporthub_backend/internals/middlewares"
)

func CampaignCategoryRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCampaignCategoryController(db)
	msg := constants.RoleErrorSuperAdmin("campaign categories")

	cats := api.Group("/campaign-categories")
	cats.Get("/", ctrl.GetCampaignCategories)
	cats.Get("/:id", ctrl.GetCampaignCategoryByID)
	cats.Post("/", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.CreateCampaignCategory)...)
	cats.Put("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.UpdateCampaignCategory)...)
	cats.Delete("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.DeleteCampaignCategory)...)
}
