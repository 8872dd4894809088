package middlewares

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "reporthub_backend/internals/helpers"
)

// ErrorHandler is the app-wide fiber.Config.ErrorHandler.
// Every error leaves as {"error": "..."}; unexpected ones are logged with the request id.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		rid, _ := c.Locals("request_id").(string)
		log.Printf("[ERROR] rid=%s %s %s: %v", rid, c.Method(), c.OriginalURL(), err)
		if fe == nil {
			msg = "Internal server error"
		}
	}
	return helper.Error(c, code, msg)
}
