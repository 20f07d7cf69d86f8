package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextSetsIDAndDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(2 * time.Second))

	var hasDeadline bool
	var local any
	app.Get("/x", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		local = c.Locals("reqid")
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	id := resp.Header.Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, local)
	assert.True(t, hasDeadline)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "given-id", resp.Header.Get(RequestIDHeader))
}

func TestGlobalRateLimiterSkipsHealth(t *testing.T) {
	app := fiber.New()
	app.Use(GlobalRateLimiter(1))
	app.Get("/api/quizzes", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	first, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)

	for i := 0; i < 3; i++ {
		health, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, health.StatusCode)
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	app := fiber.New()
	app.Use(RecoveryMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
