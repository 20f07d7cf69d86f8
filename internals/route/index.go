// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	quizroutes "quizbuilder_backend/internals/features/quizzes/route"
	repository "quizbuilder_backend/internals/features/quizzes/repository"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, repo repository.QuizRepository) {
	startTime = time.Now()

	log.Info("Setting up BaseRoutes...")
	BaseRoutes(app, repo)

	api := app.Group("/api")

	log.Info("Mounting Quiz routes...")
	quizroutes.QuizzesRoutes(api, repo)
}
