package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestContextMiddlewareSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContextMiddleware())

	var gotDeadline bool
	var deadline time.Time
	app.Get("/ping", func(c *fiber.Ctx) error {
		deadline, gotDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	before := time.Now()
	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.True(t, gotDeadline, "UserContext harus punya deadline")
	assert.WithinDuration(t, before.Add(requestTimeout), deadline, 2*time.Second)
}

func TestRequestContextMiddlewareGeneratesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContextMiddleware())

	var localID string
	app.Get("/ping", func(c *fiber.Ctx) error {
		localID, _ = c.Locals("reqid").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	assert.NoError(t, err)

	assert.NotEmpty(t, localID)
	assert.Equal(t, localID, resp.Header.Get("X-Request-ID"))
}

func TestRequestContextMiddlewareKeepsIncomingRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContextMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
