// file: internals/features/quizzes/controller/quizzes_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	dto "quizbuilder_backend/internals/features/quizzes/dto"
	repository "quizbuilder_backend/internals/features/quizzes/repository"
	helper "quizbuilder_backend/internals/helpers"
)

type QuizController struct {
	Repo repository.QuizRepository
}

func NewQuizController(repo repository.QuizRepository) *QuizController {
	return &QuizController{Repo: repo}
}

// a malformed id cannot name a stored quiz, so it is reported as not found
func parseQuizID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, helper.NewNotFound("Quiz not found")
	}
	return id, nil
}

/* =======================
   Handlers
======================= */

// POST /api/quizzes
func (ctrl *QuizController) Create(c *fiber.Ctx) error {
	body, err := dto.ParseCreateQuizRequest(c.Body())
	if err != nil {
		return helper.FromError(c, err)
	}

	m, err := body.ToModel()
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	if err := ctrl.Repo.Create(c.UserContext(), m); err != nil {
		return helper.FromError(c, repository.Classify(err))
	}

	resp, err := dto.FromModel(m)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	log.Infof("quiz created id=%s questions=%d", m.QuizID, len(resp.Questions))
	return helper.JsonCreated(c, resp)
}

// GET /api/quizzes
func (ctrl *QuizController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Repo.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, repository.Classify(err))
	}
	return helper.JsonOK(c, dto.ToListItems(rows))
}

// GET /api/quizzes/:id
func (ctrl *QuizController) GetByID(c *fiber.Ctx) error {
	id, err := parseQuizID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	m, err := ctrl.Repo.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, repository.Classify(err))
	}
	resp, err := dto.FromModel(m)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	return helper.JsonOK(c, resp)
}

// DELETE /api/quizzes/:id
func (ctrl *QuizController) Delete(c *fiber.Ctx) error {
	id, err := parseQuizID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	if err := ctrl.Repo.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, repository.Classify(err))
	}
	log.Infof("quiz deleted id=%s", id)
	return helper.JsonDeleted(c, "Quiz deleted successfully")
}
