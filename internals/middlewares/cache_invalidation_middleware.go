package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"reporthub_backend/internals/helpers/cache"
)

// InvalidateOnWrite drops every key in store once a write request succeeds.
// Uploads, price sync and payment/order edits all change report totals.
func InvalidateOnWrite(store cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return err
		}
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}
		if derr := store.DeletePrefix(c.Context(), ""); derr != nil {
			log.Printf("[CACHE] invalidate after %s %s failed: %v", c.Method(), c.Path(), derr)
		}
		return nil
	}
}
