package testdb

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/middlewares"
)

// NewApp returns a fiber app with the production error handler and a fake
// authenticated caller, standing in for AuthJWT.
func NewApp(role string, zoneID *uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	userID := uuid.NewString()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, userID)
		c.Locals(helperAuth.LocRole, role)
		if zoneID != nil {
			c.Locals(helperAuth.LocZoneID, zoneID.String())
		}
		return c.Next()
	})
	return app
}

// Request builds a same-origin JSON request so the CSRF guard lets it through.
func Request(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, "http://example.com"+path, r)
	req.Header.Set("Origin", "http://example.com")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// Do runs req against app and decodes the JSON body into a map.
func Do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

// Data returns the "data" object of a success envelope.
func Data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return d
}
