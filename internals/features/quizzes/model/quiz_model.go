package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizModel stores a quiz with its questions embedded as one JSON document.
// ID is varchar(36) rather than uuid so the same table works on MySQL.
type QuizModel struct {
	QuizID        uuid.UUID      `gorm:"column:quiz_id;type:varchar(36);primaryKey"          json:"id"`
	QuizTitle     string         `gorm:"column:quiz_title;type:varchar(255);not null"        json:"title"`
	QuizQuestions datatypes.JSON `gorm:"column:quiz_questions;not null"                      json:"questions"`
	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;not null;autoCreateTime;index" json:"createdAt"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;not null;autoUpdateTime"       json:"updatedAt"`
}

// TableName overrides the table name used by GORM.
func (QuizModel) TableName() string {
	return "quizzes"
}

func (m *QuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	return nil
}

// SetQuestions serializes qs into the JSON column.
func (m *QuizModel) SetQuestions(qs QuestionList) error {
	b, err := json.Marshal(qs)
	if err != nil {
		return err
	}
	m.QuizQuestions = datatypes.JSON(b)
	return nil
}

// Questions decodes the JSON column.
func (m *QuizModel) Questions() (QuestionList, error) {
	if len(m.QuizQuestions) == 0 {
		return QuestionList{}, nil
	}
	var qs QuestionList
	if err := json.Unmarshal(m.QuizQuestions, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// QuestionsCount counts the stored array without decoding each question;
// anything that is not a JSON array counts as zero.
func (m *QuizModel) QuestionsCount() int {
	var raws []json.RawMessage
	if err := json.Unmarshal(m.QuizQuestions, &raws); err != nil {
		return 0
	}
	return len(raws)
}
