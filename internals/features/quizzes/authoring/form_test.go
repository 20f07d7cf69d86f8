package authoring

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "quizbuilder_backend/internals/features/quizzes/dto"
	model "quizbuilder_backend/internals/features/quizzes/model"
	helper "quizbuilder_backend/internals/helpers"
)

// recordingCreator stores what it was asked to create. When gate is set,
// CreateQuiz blocks until the gate is closed.
type recordingCreator struct {
	mu      sync.Mutex
	got     []*dto.CreateQuizRequest
	entered chan struct{}
	gate    chan struct{}
}

func (c *recordingCreator) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if c.entered != nil {
		close(c.entered)
	}
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, req)
	return &dto.QuizResponse{ID: uuid.New(), Title: req.Title, Questions: req.Questions}, nil
}

func checkboxAt(t *testing.T, req *dto.CreateQuizRequest, i int) *model.CheckboxQuestion {
	t.Helper()
	q, ok := req.Questions[i].(*model.CheckboxQuestion)
	require.True(t, ok, "question %d is %T", i, req.Questions[i])
	return q
}

func assertSubset(t *testing.T, q *model.CheckboxQuestion) {
	t.Helper()
	assert.Empty(t, q.MissingAnswers(), "correctAnswers %v not within options %v", q.CorrectAnswers, q.Options)
}

func TestAddQuestionDefaults(t *testing.T) {
	f := NewForm()
	for _, typ := range model.QuestionTypes {
		_, err := f.AddQuestion(typ)
		require.NoError(t, err)
	}
	_, err := f.AddQuestion("radio")
	assert.Error(t, err)

	p := f.Payload()
	require.Len(t, p.Questions, 3)
	assert.True(t, p.Questions[0].(*model.BooleanQuestion).CorrectAnswer)
	assert.Equal(t, "", p.Questions[1].(*model.InputQuestion).CorrectAnswer)
	cb := checkboxAt(t, p, 2)
	assert.Equal(t, []string{"", ""}, cb.Options)
	assert.Empty(t, cb.CorrectAnswers)

	ids := map[string]bool{}
	for _, q := range p.Questions {
		assert.NotEmpty(t, q.QuestionID())
		assert.False(t, ids[q.QuestionID()], "ids must be distinct")
		ids[q.QuestionID()] = true
	}
}

func TestBooleanDefaultScenario(t *testing.T) {
	f := NewForm()
	f.SetTitle("T1")
	i, err := f.AddQuestion(model.QuestionTypeBoolean)
	require.NoError(t, err)
	require.NoError(t, f.SetQuestionText(i, "Is the sky blue?"))

	creator := &recordingCreator{}
	quiz, err := f.Submit(context.Background(), creator)
	require.NoError(t, err)
	assert.Equal(t, "T1", quiz.Title)

	require.Len(t, creator.got, 1)
	require.Len(t, creator.got[0].Questions, 1)
	b, ok := creator.got[0].Questions[0].(*model.BooleanQuestion)
	require.True(t, ok)
	assert.True(t, b.CorrectAnswer)
}

func TestRenameKeepsCorrectness(t *testing.T) {
	f := NewForm()
	q, _ := f.AddQuestion(model.QuestionTypeCheckbox)
	require.NoError(t, f.EditOptionText(q, 0, "A"))
	require.NoError(t, f.EditOptionText(q, 1, "B"))
	require.NoError(t, f.ToggleCorrectText(q, "A"))
	require.NoError(t, f.EditOptionText(q, 0, "A2"))

	cb := checkboxAt(t, f.Payload(), q)
	assert.Equal(t, []string{"A2", "B"}, cb.Options)
	assert.Equal(t, []string{"A2"}, cb.CorrectAnswers)
	assertSubset(t, cb)
}

func TestDuplicateTextsStayDistinct(t *testing.T) {
	f := NewForm()
	q, _ := f.AddQuestion(model.QuestionTypeCheckbox)
	require.NoError(t, f.EditOptionText(q, 0, "same"))
	require.NoError(t, f.EditOptionText(q, 1, "same"))
	require.NoError(t, f.ToggleCorrect(q, 1))

	d, err := f.Question(q)
	require.NoError(t, err)
	assert.False(t, d.Correct[d.Options[0].ID])
	assert.True(t, d.Correct[d.Options[1].ID])

	// renaming the unmarked twin must not drag the answer with it
	require.NoError(t, f.EditOptionText(q, 0, "other"))
	cb := checkboxAt(t, f.Payload(), q)
	assert.Equal(t, []string{"same"}, cb.CorrectAnswers)
	assertSubset(t, cb)
}

func TestCorrectSubsetAfterEveryEdit(t *testing.T) {
	f := NewForm()
	q, _ := f.AddQuestion(model.QuestionTypeCheckbox)
	steps := []func() error{
		func() error { return f.EditOptionText(q, 0, "x") },
		func() error { return f.EditOptionText(q, 1, "y") },
		func() error { _, err := f.AddOption(q); return err },
		func() error { return f.EditOptionText(q, 2, "z") },
		func() error { return f.ToggleCorrect(q, 0) },
		func() error { return f.ToggleCorrect(q, 2) },
		func() error { return f.EditOptionText(q, 2, "x") },
		func() error { return f.RemoveOption(q, 0) },
		func() error { return f.EditOptionText(q, 1, "w") },
		func() error { return f.ToggleCorrect(q, 0) },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		assertSubset(t, checkboxAt(t, f.Payload(), q))
	}
	cb := checkboxAt(t, f.Payload(), q)
	assert.Equal(t, []string{"y", "w"}, cb.Options)
	assert.Equal(t, []string{"y", "w"}, cb.CorrectAnswers)
}

func TestRemoveOptionFloor(t *testing.T) {
	f := NewForm()
	q, _ := f.AddQuestion(model.QuestionTypeCheckbox)
	assert.ErrorIs(t, f.RemoveOption(q, 0), ErrOptionFloor)

	o, err := f.AddOption(q)
	require.NoError(t, err)
	require.NoError(t, f.ToggleCorrect(q, o))
	require.NoError(t, f.RemoveOption(q, o))

	d, err := f.Question(q)
	require.NoError(t, err)
	assert.Len(t, d.Options, 2)
	assert.Empty(t, d.Correct)
}

func TestTypeAndIndexErrors(t *testing.T) {
	f := NewForm()
	b, _ := f.AddQuestion(model.QuestionTypeBoolean)
	in, _ := f.AddQuestion(model.QuestionTypeInput)

	assert.ErrorIs(t, f.SetInputAnswer(b, "x"), ErrWrongType)
	assert.ErrorIs(t, f.SetBooleanAnswer(in, true), ErrWrongType)
	_, err := f.AddOption(b)
	assert.ErrorIs(t, err, ErrWrongType)
	assert.ErrorIs(t, f.RemoveQuestion(5), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.SetQuestionText(-1, "x"), ErrIndexOutOfRange)

	c, _ := f.AddQuestion(model.QuestionTypeCheckbox)
	assert.ErrorIs(t, f.ToggleCorrect(c, 9), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.ToggleCorrectText(c, "missing"), ErrOptionNotFound)
}

func TestRemoveQuestionShifts(t *testing.T) {
	f := NewForm()
	f.AddQuestion(model.QuestionTypeBoolean)
	f.AddQuestion(model.QuestionTypeInput)
	f.AddQuestion(model.QuestionTypeCheckbox)

	require.NoError(t, f.RemoveQuestion(1))
	qs := f.Questions()
	require.Len(t, qs, 2)
	assert.Equal(t, model.QuestionTypeBoolean, qs[0].Type)
	assert.Equal(t, model.QuestionTypeCheckbox, qs[1].Type)
}

func TestSubmitInvalidNeverReachesCreator(t *testing.T) {
	f := NewForm()
	q, _ := f.AddQuestion(model.QuestionTypeCheckbox)
	require.NoError(t, f.SetQuestionText(q, "Pick"))
	require.NoError(t, f.EditOptionText(q, 0, "A"))
	require.NoError(t, f.EditOptionText(q, 1, "B"))

	creator := &recordingCreator{}
	_, err := f.Submit(context.Background(), creator)
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, helper.KindOf(err))

	var ae *helper.AppError
	require.ErrorAs(t, err, &ae)
	assert.True(t, ae.Fields.Has("title"))
	assert.True(t, ae.Fields.Has("questions.0.correctAnswers"))
	assert.Empty(t, creator.got)
	assert.False(t, f.Submitting())
}

func TestSubmitGuardsAgainstDoubleSubmit(t *testing.T) {
	f := NewForm()
	f.SetTitle("Once")
	f.AddQuestion(model.QuestionTypeBoolean)
	require.NoError(t, f.SetQuestionText(0, "?"))

	creator := &recordingCreator{entered: make(chan struct{}), gate: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), creator)
		done <- err
	}()

	<-creator.entered
	assert.True(t, f.Submitting())
	_, err := f.Submit(context.Background(), creator)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(creator.gate)
	require.NoError(t, <-done)
	assert.Len(t, creator.got, 1)
	assert.False(t, f.Submitting())
}

func TestFormFromRequest(t *testing.T) {
	req := &dto.CreateQuizRequest{Title: "Loaded", Questions: model.QuestionList{
		&model.InputQuestion{ID: "i1", Question: "Name?", CorrectAnswer: "Go"},
		&model.CheckboxQuestion{ID: "c1", Question: "Pick", Options: []string{"A", "B", "C"}, CorrectAnswers: []string{"C", "A"}},
	}}
	f, err := FormFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "Loaded", f.Title())

	p := f.Payload()
	assert.Equal(t, "i1", p.Questions[0].QuestionID())
	cb := checkboxAt(t, p, 1)
	assert.Equal(t, []string{"A", "B", "C"}, cb.Options)
	assert.Equal(t, []string{"A", "C"}, cb.CorrectAnswers, "projection follows option order")
	assert.Nil(t, f.Validate())
}
