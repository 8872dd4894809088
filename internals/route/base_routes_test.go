package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/databases/testdb"
)

func TestHealth(t *testing.T) {
	startTime = time.Now()
	app := fiber.New()
	BaseRoutes(app, testdb.New(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
