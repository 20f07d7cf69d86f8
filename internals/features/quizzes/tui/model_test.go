package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbuilder_backend/internals/features/quizzes/authoring"
	dto "quizbuilder_backend/internals/features/quizzes/dto"
	model "quizbuilder_backend/internals/features/quizzes/model"
)

type fakeCreator struct {
	got *dto.CreateQuizRequest
}

func (c *fakeCreator) CreateQuiz(_ context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	c.got = req
	return &dto.QuizResponse{ID: uuid.New(), Title: req.Title, Questions: req.Questions}, nil
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestAuthoringFlowSubmits(t *testing.T) {
	form := authoring.NewForm()
	creator := &fakeCreator{}
	m := NewModel(context.Background(), form, creator, Options{NoColor: true})

	m, _ = send(t, m,
		typed("Weather"),
		key(tea.KeyCtrlB), typed("Is rain wet?"),
		key(tea.KeyDown), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		key(tea.KeyCtrlK), typed("Pick warm"),
		key(tea.KeyDown), typed("sun"),
		key(tea.KeyDown), typed("snow"),
		key(tea.KeyUp), key(tea.KeyCtrlA),
	)

	assert.Equal(t, "Weather", form.Title())
	p := form.Payload()
	require.Len(t, p.Questions, 2)
	assert.Equal(t, &model.BooleanQuestion{ID: p.Questions[0].QuestionID(), Question: "Is rain wet?", CorrectAnswer: false}, p.Questions[0])
	cb := p.Questions[1].(*model.CheckboxQuestion)
	assert.Equal(t, []string{"sun", "snow"}, cb.Options)
	assert.Equal(t, []string{"sun"}, cb.CorrectAnswers)

	m, cmd := send(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, cmd = send(t, m, cmd())
	require.NotNil(t, m.Created())
	assert.Equal(t, "Weather", creator.got.Title)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSubmitShowsFieldErrors(t *testing.T) {
	creator := &fakeCreator{}
	m := NewModel(context.Background(), authoring.NewForm(), creator, Options{NoColor: true})

	m, cmd := send(t, m, key(tea.KeyCtrlK), key(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Nil(t, creator.got)

	view := m.View()
	assert.Contains(t, view, "Title is required")
	assert.Contains(t, view, "Question is required")
	assert.Contains(t, view, "Select at least one correct answer")
	assert.Contains(t, view, "Question 1 [CHECKBOX]")
}

func TestRemoveOptionRespectsFloor(t *testing.T) {
	form := authoring.NewForm()
	m := NewModel(context.Background(), form, &fakeCreator{}, Options{NoColor: true})

	m, _ = send(t, m, key(tea.KeyCtrlK), key(tea.KeyDown), key(tea.KeyCtrlX))
	assert.Contains(t, m.View(), authoring.ErrOptionFloor.Error())

	m, _ = send(t, m, key(tea.KeyCtrlO), typed("third"), key(tea.KeyCtrlX))
	d, err := form.Question(0)
	require.NoError(t, err)
	assert.Len(t, d.Options, 2)
	for _, o := range d.Options {
		assert.NotEqual(t, "third", o.Text)
	}
}
