package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/finance/transactions/controller"
	"reporthub_backend/internals/middlewares"
)

func TransactionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTransactionController(db)
	msg := constants.RoleErrorAdmin("transactions")

	tr := api.Group("/transactions")
	tr.Get("/", ctrl.GetTransactions)
	tr.Get("/:id", ctrl.GetTransactionByID)
	tr.Post("/", middlewares.Write(msg, constants.AdminRoles, ctrl.CreateTransaction)...)
	tr.Put("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.UpdateTransaction)...)
	tr.Delete("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.DeleteTransaction)...)
}
