package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/finance/payments/controller"
	"reporthub_backend/internals/middlewares"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)
	msg := constants.RoleErrorAdmin("payments")

	pay := api.Group("/payments")
	pay.Get("/", ctrl.GetPayments)
	pay.Get("/:id", ctrl.GetPaymentByID)
	pay.Post("/", middlewares.Write(msg, constants.AdminRoles, ctrl.CreatePayment)...)
	pay.Put("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.UpdatePayment)...)
	pay.Delete("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.DeletePayment)...)
}
