// file: internals/features/quizzes/model/question.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type QuestionType string

const (
	QuestionTypeBoolean  QuestionType = "boolean"
	QuestionTypeInput    QuestionType = "input"
	QuestionTypeCheckbox QuestionType = "checkbox"
)

// QuestionTypes lists every known tag in display order.
var QuestionTypes = []QuestionType{QuestionTypeBoolean, QuestionTypeInput, QuestionTypeCheckbox}

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeBoolean, QuestionTypeInput, QuestionTypeCheckbox:
		return true
	}
	return false
}

func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return t, nil
}

// Question is a closed sum type: only *BooleanQuestion, *InputQuestion and
// *CheckboxQuestion implement it.
type Question interface {
	QuestionID() string
	QuestionType() QuestionType
	QuestionText() string
	isQuestion()
}

type BooleanQuestion struct {
	ID            string `json:"id" validate:"notblank"`
	Question      string `json:"question" validate:"notblank"`
	CorrectAnswer bool   `json:"correctAnswer"`
}

type InputQuestion struct {
	ID            string `json:"id" validate:"notblank"`
	Question      string `json:"question" validate:"notblank"`
	CorrectAnswer string `json:"correctAnswer" validate:"notblank"`
}

type CheckboxQuestion struct {
	ID             string   `json:"id" validate:"notblank"`
	Question       string   `json:"question" validate:"notblank"`
	Options        []string `json:"options" validate:"min=2,unique,dive,notblank"`
	CorrectAnswers []string `json:"correctAnswers" validate:"min=1,unique,dive,notblank"`
}

func (q *BooleanQuestion) QuestionID() string         { return q.ID }
func (q *BooleanQuestion) QuestionType() QuestionType { return QuestionTypeBoolean }
func (q *BooleanQuestion) QuestionText() string       { return q.Question }
func (*BooleanQuestion) isQuestion()                  {}

func (q *InputQuestion) QuestionID() string         { return q.ID }
func (q *InputQuestion) QuestionType() QuestionType { return QuestionTypeInput }
func (q *InputQuestion) QuestionText() string       { return q.Question }
func (*InputQuestion) isQuestion()                  {}

func (q *CheckboxQuestion) QuestionID() string         { return q.ID }
func (q *CheckboxQuestion) QuestionType() QuestionType { return QuestionTypeCheckbox }
func (q *CheckboxQuestion) QuestionText() string       { return q.Question }
func (*CheckboxQuestion) isQuestion()                  {}

// IsCorrect reports whether option is part of the answer key.
func (q *CheckboxQuestion) IsCorrect(option string) bool {
	for _, a := range q.CorrectAnswers {
		if a == option {
			return true
		}
	}
	return false
}

// MissingAnswers returns the correctAnswers entries that are not options.
func (q *CheckboxQuestion) MissingAnswers() []string {
	var out []string
	for _, a := range q.CorrectAnswers {
		found := false
		for _, o := range q.Options {
			if o == a {
				found = true
				break
			}
		}
		if !found {
			out = append(out, a)
		}
	}
	return out
}

/* ------------------------
   JSON (discriminated by "type")
------------------------ */

type booleanWire struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	CorrectAnswer bool         `json:"correctAnswer"`
}

type inputWire struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	CorrectAnswer string       `json:"correctAnswer"`
}

type checkboxWire struct {
	ID             string       `json:"id"`
	Type           QuestionType `json:"type"`
	Question       string       `json:"question"`
	Options        []string     `json:"options"`
	CorrectAnswers []string     `json:"correctAnswers"`
}

func (q BooleanQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(booleanWire{ID: q.ID, Type: QuestionTypeBoolean, Question: q.Question, CorrectAnswer: q.CorrectAnswer})
}

func (q InputQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(inputWire{ID: q.ID, Type: QuestionTypeInput, Question: q.Question, CorrectAnswer: q.CorrectAnswer})
}

func (q CheckboxQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(checkboxWire{
		ID:             q.ID,
		Type:           QuestionTypeCheckbox,
		Question:       q.Question,
		Options:        nonNil(q.Options),
		CorrectAnswers: nonNil(q.CorrectAnswers),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// UnmarshalQuestion decodes one question, rejecting unknown tags and any
// field that does not belong to the tagged variant.
func UnmarshalQuestion(raw []byte) (Question, error) {
	var head struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case QuestionTypeBoolean:
		var w booleanWire
		if err := decodeStrict(raw, &w); err != nil {
			return nil, err
		}
		return &BooleanQuestion{ID: w.ID, Question: w.Question, CorrectAnswer: w.CorrectAnswer}, nil
	case QuestionTypeInput:
		var w inputWire
		if err := decodeStrict(raw, &w); err != nil {
			return nil, err
		}
		return &InputQuestion{ID: w.ID, Question: w.Question, CorrectAnswer: w.CorrectAnswer}, nil
	case QuestionTypeCheckbox:
		var w checkboxWire
		if err := decodeStrict(raw, &w); err != nil {
			return nil, err
		}
		return &CheckboxQuestion{ID: w.ID, Question: w.Question, Options: w.Options, CorrectAnswers: w.CorrectAnswers}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", head.Type)
	}
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// QuestionList is an ordered list of questions; order is display order.
type QuestionList []Question

func (l QuestionList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Question(l))
}

func (l *QuestionList) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	out := make(QuestionList, 0, len(raws))
	for i, raw := range raws {
		q, err := UnmarshalQuestion(raw)
		if err != nil {
			return fmt.Errorf("questions[%d]: %w", i, err)
		}
		out = append(out, q)
	}
	*l = out
	return nil
}

// Clone returns a deep copy.
func (l QuestionList) Clone() QuestionList {
	if l == nil {
		return nil
	}
	out := make(QuestionList, len(l))
	for i, q := range l {
		out[i] = CloneQuestion(q)
	}
	return out
}

func CloneQuestion(q Question) Question {
	switch v := q.(type) {
	case *BooleanQuestion:
		cp := *v
		return &cp
	case *InputQuestion:
		cp := *v
		return &cp
	case *CheckboxQuestion:
		cp := *v
		cp.Options = append([]string(nil), v.Options...)
		cp.CorrectAnswers = append([]string(nil), v.CorrectAnswers...)
		return &cp
	default:
		panic(fmt.Sprintf("model: unhandled question %T", q))
	}
}
