package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware turns a panic into a plain error for ErrorHandler (500),
// logging the stack under the request id so it lines up with the access log.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rid, _ := c.Locals("request_id").(string)
			log.Printf("[PANIC] rid=%s %s %s: %v\n%s", rid, c.Method(), c.OriginalURL(), e, debug.Stack())
		},
	})
}
