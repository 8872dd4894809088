package middlewares

import (
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CSRFGuard rejects state-changing requests whose Origin (or Referer, when Origin
// is absent) is neither the request host nor one of trustedOrigins.
// Safe methods pass through.
func CSRFGuard(trustedOrigins []string) fiber.Handler {
	trusted := make(map[string]struct{}, len(trustedOrigins))
	for _, o := range trustedOrigins {
		if h := originHost(o); h != "" {
			trusted[h] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		source := c.Get(fiber.HeaderOrigin)
		if source == "" || source == "null" {
			source = c.Get(fiber.HeaderReferer)
		}
		host := originHost(source)
		if host == "" {
			log.Printf("[WARN] CSRF: %s %s without Origin/Referer", c.Method(), c.Path())
			return fiber.NewError(fiber.StatusForbidden, "CSRF validation failed")
		}

		if strings.EqualFold(host, c.Hostname()) {
			return c.Next()
		}
		if _, ok := trusted[host]; ok {
			return c.Next()
		}
		log.Printf("[WARN] CSRF: origin %q rejected for %s %s", host, c.Method(), c.Path())
		return fiber.NewError(fiber.StatusForbidden, "CSRF validation failed")
	}
}

// originHost returns "host[:port]" lower-cased, or "" when s is not an absolute URL.
func originHost(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Host)
}
