package route

import (
	"github.com/gofiber/fiber/v2"

	quizcontroller "quizbuilder_backend/internals/features/quizzes/controller"
	repository "quizbuilder_backend/internals/features/quizzes/repository"
)

/*
Catatan:
- Mount parent router dengan prefix /api.
- Base group di sini: /api/quizzes
*/

func QuizzesRoutes(r fiber.Router, repo repository.QuizRepository) {
	ctrl := quizcontroller.NewQuizController(repo)
	g := r.Group("/quizzes") // -> /api/quizzes

	g.Post("/", ctrl.Create)      // POST   /api/quizzes
	g.Get("/", ctrl.List)         // GET    /api/quizzes
	g.Get("/:id", ctrl.GetByID)   // GET    /api/quizzes/:id
	g.Delete("/:id", ctrl.Delete) // DELETE /api/quizzes/:id
}
