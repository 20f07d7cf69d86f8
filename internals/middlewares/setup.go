package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"quizbuilder_backend/internals/middlewares/logger"
)

type Options struct {
	CorsAllowOrigins string
	RateLimitMax     int
	RequestTimeout   time.Duration
}

// SetupMiddlewares memasang middleware global dengan urutan tetap:
// recover paling luar, lalu request id/timeout, logging, CORS, limiter.
func SetupMiddlewares(app *fiber.App, opts Options) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(opts.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	app.Use(CorsMiddleware(opts.CorsAllowOrigins))
	app.Use(GlobalRateLimiter(opts.RateLimitMax))
}
