package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/finance/financial_years/controller"
	"reporthub_backend/internals/middlewares"
)

func FinancialYearRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFinancialYearController(db)
	msg := constants.RoleErrorSuperAdmin("financial years")

	fy := api.Group("/financial-years")
	fy.Get("/", ctrl.GetFinancialYears)
	fy.Get("/current", ctrl.GetCurrent)
	fy.Get("/resolve", ctrl.Resolve)
	fy.Get("/:id", ctrl.GetFinancialYearByID)
	fy.Post("/", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.CreateFinancialYear)...)
	fy.Post("/:id/set-current", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.SetCurrent)...)
	fy.Put("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.UpdateFinancialYear)...)
	fy.Delete("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.DeleteFinancialYear)...)
}
