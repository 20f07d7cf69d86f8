// Package authoring holds the quiz form: an editable set of question drafts
// that projects to a create request and submits it at most once at a time.
package authoring

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	dto "quizbuilder_backend/internals/features/quizzes/dto"
	model "quizbuilder_backend/internals/features/quizzes/model"
	helper "quizbuilder_backend/internals/helpers"
)

// MinOptions is the smallest option count a checkbox draft may shrink to.
const MinOptions = 2

var (
	ErrSubmitInFlight  = errors.New("a submit is already in progress")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrWrongType       = errors.New("operation does not apply to this question type")
	ErrOptionFloor     = errors.New("a checkbox question needs at least 2 options")
	ErrOptionNotFound  = errors.New("no option with that text")
)

// Creator persists a validated quiz; *client.Client satisfies it.
type Creator interface {
	CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
}

type Option struct {
	ID   string
	Text string
}

// QuestionDraft is one question being edited. Only the fields of its Type are
// meaningful; the projection ignores the rest.
type QuestionDraft struct {
	ID          string
	Type        model.QuestionType
	Text        string
	BoolAnswer  bool
	InputAnswer string
	Options     []Option
	Correct     map[string]bool // option ID -> marked correct
}

// CorrectTexts lists the texts of the options marked correct, in option order.
func (d *QuestionDraft) CorrectTexts() []string {
	out := []string{}
	for _, o := range d.Options {
		if d.Correct[o.ID] {
			out = append(out, o.Text)
		}
	}
	return out
}

func (d *QuestionDraft) clone() QuestionDraft {
	c := *d
	c.Options = append([]Option(nil), d.Options...)
	c.Correct = make(map[string]bool, len(d.Correct))
	for k, v := range d.Correct {
		c.Correct[k] = v
	}
	return c
}

type Form struct {
	mu         sync.Mutex
	title      string
	drafts     []*QuestionDraft
	submitting bool
	newID      func() string
}

func NewForm() *Form {
	return &Form{newID: newV7}
}

func newV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FormFromRequest loads an existing payload into a form. Question ids are
// kept; options get fresh ids and each correct answer marks the first option
// carrying its text.
func FormFromRequest(req *dto.CreateQuizRequest) (*Form, error) {
	f := NewForm()
	f.title = req.Title
	for i, q := range req.Questions {
		d := &QuestionDraft{ID: q.QuestionID(), Type: q.QuestionType(), Text: q.QuestionText(), Correct: map[string]bool{}}
		switch v := q.(type) {
		case *model.BooleanQuestion:
			d.BoolAnswer = v.CorrectAnswer
		case *model.InputQuestion:
			d.InputAnswer = v.CorrectAnswer
		case *model.CheckboxQuestion:
			for _, text := range v.Options {
				d.Options = append(d.Options, Option{ID: f.newID(), Text: text})
			}
			for _, ans := range v.CorrectAnswers {
				if id, ok := firstOptionWithText(d, ans); ok {
					d.Correct[id] = true
				}
			}
		default:
			return nil, errors.Errorf("question %d: unsupported type %T", i, q)
		}
		f.drafts = append(f.drafts, d)
	}
	return f, nil
}

func firstOptionWithText(d *QuestionDraft, text string) (string, bool) {
	for _, o := range d.Options {
		if o.Text == text {
			return o.ID, true
		}
	}
	return "", false
}

/* =======================
   Read access
======================= */

func (f *Form) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

func (f *Form) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.drafts)
}

// Question returns a copy of draft i.
func (f *Form) Question(i int) (QuestionDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.draft(i)
	if err != nil {
		return QuestionDraft{}, err
	}
	return d.clone(), nil
}

// Questions returns copies of all drafts in order.
func (f *Form) Questions() []QuestionDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]QuestionDraft, 0, len(f.drafts))
	for _, d := range f.drafts {
		out = append(out, d.clone())
	}
	return out
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

/* =======================
   Edits
======================= */

func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

// AddQuestion appends a draft of type t and returns its index.
func (f *Form) AddQuestion(t model.QuestionType) (int, error) {
	if !t.Valid() {
		return -1, errors.Errorf("unknown question type %q", t)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	d := &QuestionDraft{ID: f.newID(), Type: t, Correct: map[string]bool{}}
	switch t {
	case model.QuestionTypeBoolean:
		d.BoolAnswer = true
	case model.QuestionTypeCheckbox:
		d.Options = []Option{{ID: f.newID()}, {ID: f.newID()}}
	}
	f.drafts = append(f.drafts, d)
	return len(f.drafts) - 1, nil
}

func (f *Form) RemoveQuestion(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.draft(i); err != nil {
		return err
	}
	f.drafts = append(f.drafts[:i], f.drafts[i+1:]...)
	return nil
}

func (f *Form) SetQuestionText(i int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.draft(i)
	if err != nil {
		return err
	}
	d.Text = text
	return nil
}

func (f *Form) SetBooleanAnswer(i int, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.typed(i, model.QuestionTypeBoolean)
	if err != nil {
		return err
	}
	d.BoolAnswer = v
	return nil
}

func (f *Form) SetInputAnswer(i int, v string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.typed(i, model.QuestionTypeInput)
	if err != nil {
		return err
	}
	d.InputAnswer = v
	return nil
}

// AddOption appends an empty option to checkbox draft q and returns its index.
func (f *Form) AddOption(q int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.typed(q, model.QuestionTypeCheckbox)
	if err != nil {
		return -1, err
	}
	d.Options = append(d.Options, Option{ID: f.newID()})
	return len(d.Options) - 1, nil
}

func (f *Form) RemoveOption(q, o int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.option(q, o)
	if err != nil {
		return err
	}
	if len(d.Options) <= MinOptions {
		return ErrOptionFloor
	}
	delete(d.Correct, d.Options[o].ID)
	d.Options = append(d.Options[:o], d.Options[o+1:]...)
	return nil
}

// EditOptionText renames option o in place. Correctness follows the option,
// not its old text.
func (f *Form) EditOptionText(q, o int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.option(q, o)
	if err != nil {
		return err
	}
	d.Options[o].Text = text
	return nil
}

// ToggleCorrect flips whether option o of draft q is a correct answer.
func (f *Form) ToggleCorrect(q, o int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.option(q, o)
	if err != nil {
		return err
	}
	id := d.Options[o].ID
	if d.Correct[id] {
		delete(d.Correct, id)
	} else {
		d.Correct[id] = true
	}
	return nil
}

// ToggleCorrectText toggles the first option whose text equals text.
func (f *Form) ToggleCorrectText(q int, text string) error {
	f.mu.Lock()
	d, err := f.typed(q, model.QuestionTypeCheckbox)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	idx := -1
	for i, opt := range d.Options {
		if opt.Text == text {
			idx = i
			break
		}
	}
	f.mu.Unlock()
	if idx < 0 {
		return errors.Wrapf(ErrOptionNotFound, "%q", text)
	}
	return f.ToggleCorrect(q, idx)
}

/* =======================
   Projection & submit
======================= */

// Payload projects the drafts to the create request shape.
func (f *Form) Payload() *dto.CreateQuizRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payload()
}

func (f *Form) payload() *dto.CreateQuizRequest {
	req := &dto.CreateQuizRequest{Title: f.title, Questions: model.QuestionList{}}
	for _, d := range f.drafts {
		switch d.Type {
		case model.QuestionTypeBoolean:
			req.Questions = append(req.Questions, &model.BooleanQuestion{ID: d.ID, Question: d.Text, CorrectAnswer: d.BoolAnswer})
		case model.QuestionTypeInput:
			req.Questions = append(req.Questions, &model.InputQuestion{ID: d.ID, Question: d.Text, CorrectAnswer: d.InputAnswer})
		case model.QuestionTypeCheckbox:
			opts := make([]string, 0, len(d.Options))
			for _, o := range d.Options {
				opts = append(opts, o.Text)
			}
			req.Questions = append(req.Questions, &model.CheckboxQuestion{
				ID:             d.ID,
				Question:       d.Text,
				Options:        opts,
				CorrectAnswers: d.CorrectTexts(),
			})
		}
	}
	return req
}

// Validate runs the create-request rules over the current payload; nil
// means the form can be submitted.
func (f *Form) Validate() helper.FieldErrors {
	return dto.ValidateCreateQuizRequest(f.Payload())
}

// Submit validates and hands the payload to creator. Invalid forms never
// reach creator. A call made while another is still running returns
// ErrSubmitInFlight.
func (f *Form) Submit(ctx context.Context, creator Creator) (*dto.QuizResponse, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	req := f.payload()
	if fe := dto.ValidateCreateQuizRequest(req); fe != nil {
		f.mu.Unlock()
		return nil, helper.NewValidation(fe)
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()
	return creator.CreateQuiz(ctx, req)
}

/* =======================
   lookups (caller holds mu)
======================= */

func (f *Form) draft(i int) (*QuestionDraft, error) {
	if i < 0 || i >= len(f.drafts) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "question %d", i)
	}
	return f.drafts[i], nil
}

func (f *Form) typed(i int, t model.QuestionType) (*QuestionDraft, error) {
	d, err := f.draft(i)
	if err != nil {
		return nil, err
	}
	if d.Type != t {
		return nil, errors.Wrapf(ErrWrongType, "question %d is %s, not %s", i, d.Type, t)
	}
	return d, nil
}

func (f *Form) option(q, o int) (*QuestionDraft, error) {
	d, err := f.typed(q, model.QuestionTypeCheckbox)
	if err != nil {
		return nil, err
	}
	if o < 0 || o >= len(d.Options) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "question %d option %d", q, o)
	}
	return d, nil
}
