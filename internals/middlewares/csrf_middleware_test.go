package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFApp(trusted ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(CSRFGuard(trusted))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/x", ok)
	app.Post("/x", ok)
	app.Delete("/x", ok)
	return app
}

func TestCSRFGuard(t *testing.T) {
	app := newCSRFApp("https://admin.example.org")

	cases := []struct {
		name    string
		method  string
		origin  string
		referer string
		want    int
	}{
		{"get passes without origin", fiber.MethodGet, "", "", fiber.StatusOK},
		{"same host origin", fiber.MethodPost, "http://example.com", "", fiber.StatusOK},
		{"trusted origin", fiber.MethodDelete, "https://admin.example.org", "", fiber.StatusOK},
		{"referer fallback", fiber.MethodPost, "", "http://example.com/zones/1", fiber.StatusOK},
		{"foreign origin", fiber.MethodPost, "https://evil.test", "", fiber.StatusForbidden},
		{"missing origin and referer", fiber.MethodPost, "", "", fiber.StatusForbidden},
		{"garbage origin", fiber.MethodPost, "not a url", "", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "http://example.com/x", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
