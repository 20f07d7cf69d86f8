package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	repository "quizbuilder_backend/internals/features/quizzes/repository"
	helper "quizbuilder_backend/internals/helpers"
)

func BaseRoutes(app *fiber.App, repo repository.QuizRepository) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Quiz Builder API 🚀")
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return helper.JsonMessage(c, fiber.StatusOK, "Server is running!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := repo.Ping(c.UserContext()); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}
