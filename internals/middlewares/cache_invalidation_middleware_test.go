package middlewares

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct{ deletes int }

func (*countingCache) Get(context.Context, string, any) (bool, error)         { return false, nil }
func (*countingCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (c *countingCache) DeletePrefix(context.Context, string) error {
	c.deletes++
	return nil
}

func TestInvalidateOnWrite(t *testing.T) {
	store := &countingCache{}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(InvalidateOnWrite(store))
	app.Get("/reports", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/uploads", func(c *fiber.Ctx) error { return c.Status(fiber.StatusCreated).SendString("ok") })
	app.Post("/price-sync", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad") })
	app.Delete("/payments/1", func(c *fiber.Ctx) error { return c.Status(fiber.StatusNotFound).SendString("gone") })

	cases := []struct {
		method, path string
		wantCode     int
		wantDeletes  int
	}{
		{fiber.MethodGet, "/reports", fiber.StatusOK, 0},
		{fiber.MethodPost, "/uploads", fiber.StatusCreated, 1},
		{fiber.MethodPost, "/price-sync", fiber.StatusBadRequest, 1},
		{fiber.MethodDelete, "/payments/1", fiber.StatusNotFound, 1},
		{fiber.MethodPost, "/uploads", fiber.StatusCreated, 2},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.wantCode, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.wantDeletes, store.deletes, "%s %s", tc.method, tc.path)
	}
}
