// file: internals/features/quizzes/dto/quiz_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "quizbuilder_backend/internals/features/quizzes/model"
)

/* ==============================
   CREATE (POST /api/quizzes)
============================== */

type CreateQuizRequest struct {
	Title     string             `json:"title" validate:"notblank"`
	Questions model.QuestionList `json:"questions" validate:"min=1"`
}

// ToModel builds the model; ID and timestamps are assigned by the store.
func (r *CreateQuizRequest) ToModel() (*model.QuizModel, error) {
	m := &model.QuizModel{QuizTitle: r.Title}
	if err := m.SetQuestions(r.Questions); err != nil {
		return nil, err
	}
	return m, nil
}

/* ==============================
   RESPONSES
============================== */

type QuizResponse struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Questions model.QuestionList `json:"questions"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// QuizListItem is a read-time projection; it is never stored.
type QuizListItem struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	QuestionsCount int       `json:"questionsCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromModel(m *model.QuizModel) (QuizResponse, error) {
	qs, err := m.Questions()
	if err != nil {
		return QuizResponse{}, err
	}
	return QuizResponse{
		ID:        m.QuizID,
		Title:     m.QuizTitle,
		Questions: qs,
		CreatedAt: m.QuizCreatedAt,
		UpdatedAt: m.QuizUpdatedAt,
	}, nil
}

func ToListItem(m *model.QuizModel) QuizListItem {
	return QuizListItem{
		ID:             m.QuizID,
		Title:          m.QuizTitle,
		QuestionsCount: m.QuestionsCount(),
		CreatedAt:      m.QuizCreatedAt,
	}
}

func ToListItems(ms []model.QuizModel) []QuizListItem {
	out := make([]QuizListItem, 0, len(ms))
	for i := range ms {
		out = append(out, ToListItem(&ms[i]))
	}
	return out
}
