// Package tui is the interactive quiz authoring screen used by quizctl author.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizbuilder_backend/internals/features/quizzes/authoring"
	dto "quizbuilder_backend/internals/features/quizzes/dto"
	model "quizbuilder_backend/internals/features/quizzes/model"
	helper "quizbuilder_backend/internals/helpers"
)

type fieldKind int

const (
	fieldTitle fieldKind = iota
	fieldQuestion
	fieldBool
	fieldInput
	fieldOption
)

// field is one focusable row of the form.
type field struct {
	kind fieldKind
	q, o int
}

// path is the validation path errors for this field are reported under.
func (f field) path() string {
	switch f.kind {
	case fieldTitle:
		return "title"
	case fieldQuestion:
		return fmt.Sprintf("questions.%d.question", f.q)
	case fieldInput:
		return fmt.Sprintf("questions.%d.correctAnswer", f.q)
	case fieldOption:
		return fmt.Sprintf("questions.%d.options.%d", f.q, f.o)
	}
	return ""
}

// Options configures the authoring model.
type Options struct {
	NoColor bool
}

type submitResultMsg struct {
	quiz *dto.QuizResponse
	err  error
}

// Model renders an authoring.Form and maps key presses to form edits.
type Model struct {
	ctx     context.Context
	form    *authoring.Form
	creator authoring.Creator
	input   textinput.Model
	focus   int
	errs    helper.FieldErrors
	status  string
	created *dto.QuizResponse
	noColor bool
}

// NewModel builds the screen over form; creator receives the quiz on ctrl+s.
func NewModel(ctx context.Context, form *authoring.Form, creator authoring.Creator, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	m := Model{ctx: ctx, form: form, creator: creator, input: ti, noColor: opts.NoColor}
	m.load()
	return m
}

// Created is the stored quiz once a submit succeeded.
func (m Model) Created() *dto.QuizResponse { return m.created }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case submitResultMsg:
		return m.applySubmit(typed)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "down", "tab":
		m.move(1)
		return m, nil
	case "up", "shift+tab":
		m.move(-1)
		return m, nil
	case "ctrl+b":
		return m.addQuestion(model.QuestionTypeBoolean)
	case "ctrl+t":
		return m.addQuestion(model.QuestionTypeInput)
	case "ctrl+k":
		return m.addQuestion(model.QuestionTypeCheckbox)
	case "ctrl+o":
		m.commit()
		f := m.current()
		if f.kind == fieldTitle {
			m.status = "Move to a checkbox question to add an option"
			return m, nil
		}
		if o, err := m.form.AddOption(f.q); err != nil {
			m.status = err.Error()
		} else {
			m.focusOn(field{kind: fieldOption, q: f.q, o: o})
		}
		return m, nil
	case "ctrl+x":
		return m.remove()
	case "ctrl+a":
		f := m.current()
		if f.kind != fieldOption {
			m.status = "Move to an option to mark it correct"
			return m, nil
		}
		m.commit()
		if err := m.form.ToggleCorrect(f.q, f.o); err != nil {
			m.status = err.Error()
		}
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	if f := m.current(); f.kind == fieldBool {
		if k.String() == " " || k.String() == "enter" {
			q, _ := m.form.Question(f.q)
			_ = m.form.SetBooleanAnswer(f.q, !q.BoolAnswer)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	m.commit()
	return m, cmd
}

func (m Model) addQuestion(t model.QuestionType) (tea.Model, tea.Cmd) {
	m.commit()
	i, err := m.form.AddQuestion(t)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.focusOn(field{kind: fieldQuestion, q: i})
	return m, nil
}

func (m Model) remove() (tea.Model, tea.Cmd) {
	m.commit()
	f := m.current()
	var err error
	switch f.kind {
	case fieldTitle:
		return m, nil
	case fieldOption:
		err = m.form.RemoveOption(f.q, f.o)
	default:
		err = m.form.RemoveQuestion(f.q)
	}
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.errs = nil
	m.focus = min(m.focus, len(m.fields())-1)
	m.load()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.commit()
	if m.form.Submitting() {
		m.status = "Saving…"
		return m, nil
	}
	if fe := m.form.Validate(); fe != nil {
		m.errs = fe
		m.status = "Fix the highlighted fields"
		return m, nil
	}
	m.errs = nil
	m.status = "Saving…"
	form, creator, ctx := m.form, m.creator, m.ctx
	return m, func() tea.Msg {
		quiz, err := form.Submit(ctx, creator)
		return submitResultMsg{quiz: quiz, err: err}
	}
}

func (m Model) applySubmit(res submitResultMsg) (tea.Model, tea.Cmd) {
	if res.err == nil {
		m.created = res.quiz
		m.status = "Saved " + res.quiz.ID.String()
		return m, tea.Quit
	}
	if errors.Is(res.err, authoring.ErrSubmitInFlight) {
		m.status = "Saving…"
		return m, nil
	}
	var ae *helper.AppError
	if errors.As(res.err, &ae) && ae.Fields != nil {
		m.errs = ae.Fields
		m.status = "Fix the highlighted fields"
		return m, nil
	}
	m.status = "Save failed: " + res.err.Error()
	return m, nil
}

/* =======================
   focus handling
======================= */

func (m *Model) fields() []field {
	out := []field{{kind: fieldTitle}}
	for i, d := range m.form.Questions() {
		out = append(out, field{kind: fieldQuestion, q: i})
		switch d.Type {
		case model.QuestionTypeBoolean:
			out = append(out, field{kind: fieldBool, q: i})
		case model.QuestionTypeInput:
			out = append(out, field{kind: fieldInput, q: i})
		case model.QuestionTypeCheckbox:
			for o := range d.Options {
				out = append(out, field{kind: fieldOption, q: i, o: o})
			}
		}
	}
	return out
}

func (m *Model) current() field {
	fs := m.fields()
	if m.focus >= len(fs) {
		m.focus = len(fs) - 1
	}
	return fs[m.focus]
}

func (m *Model) move(delta int) {
	m.commit()
	fs := m.fields()
	m.focus += delta
	if m.focus < 0 {
		m.focus = 0
	}
	if m.focus >= len(fs) {
		m.focus = len(fs) - 1
	}
	m.load()
}

func (m *Model) focusOn(target field) {
	for i, f := range m.fields() {
		if f == target {
			m.focus = i
			break
		}
	}
	m.load()
}

// load copies the focused field's text into the input.
func (m *Model) load() {
	f := m.current()
	if f.kind == fieldBool {
		m.input.Blur()
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.textOf(f))
	m.input.CursorEnd()
	m.input.Focus()
}

// commit writes the input back to the focused field.
func (m *Model) commit() {
	f := m.current()
	v := m.input.Value()
	switch f.kind {
	case fieldTitle:
		m.form.SetTitle(v)
	case fieldQuestion:
		_ = m.form.SetQuestionText(f.q, v)
	case fieldInput:
		_ = m.form.SetInputAnswer(f.q, v)
	case fieldOption:
		_ = m.form.EditOptionText(f.q, f.o, v)
	}
}

func (m *Model) textOf(f field) string {
	if f.kind == fieldTitle {
		return m.form.Title()
	}
	d, err := m.form.Question(f.q)
	if err != nil {
		return ""
	}
	switch f.kind {
	case fieldQuestion:
		return d.Text
	case fieldInput:
		return d.InputAnswer
	case fieldOption:
		return d.Options[f.o].Text
	}
	return ""
}

/* =======================
   view
======================= */

func (m Model) View() string {
	fs := m.fields()
	drafts := m.form.Questions()
	var lines []string
	lines = append(lines, m.style("New quiz", lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))), "")

	for i, f := range fs {
		focused := i == m.focus
		cursor := "  "
		if focused {
			cursor = "> "
		}
		switch f.kind {
		case fieldTitle:
			lines = append(lines, cursor+"Title: "+m.valueFor(f, focused, m.form.Title()))
		case fieldQuestion:
			d := drafts[f.q]
			lines = append(lines, "")
			lines = append(lines, m.style(fmt.Sprintf("  Question %d [%s]", f.q+1, strings.ToUpper(string(d.Type))),
				lipgloss.NewStyle().Foreground(lipgloss.Color("242"))))
			lines = append(lines, m.errorLines(fmt.Sprintf("questions.%d.options", f.q))...)
			lines = append(lines, m.errorLines(fmt.Sprintf("questions.%d.correctAnswers", f.q))...)
			lines = append(lines, cursor+"Text: "+m.valueFor(f, focused, d.Text))
		case fieldBool:
			lines = append(lines, cursor+"Answer: "+boolLabel(drafts[f.q].BoolAnswer)+m.hint(focused, "space to flip"))
		case fieldInput:
			lines = append(lines, cursor+"Answer: "+m.valueFor(f, focused, drafts[f.q].InputAnswer))
		case fieldOption:
			d := drafts[f.q]
			mark := "[ ]"
			if d.Correct[d.Options[f.o].ID] {
				mark = "[x]"
			}
			lines = append(lines, cursor+mark+" "+m.valueFor(f, focused, d.Options[f.o].Text))
		}
		lines = append(lines, m.errorLines(f.path())...)
	}
	lines = append(lines, m.errorLines("questions")...)

	lines = append(lines, "")
	if m.status != "" {
		lines = append(lines, m.status)
	}
	lines = append(lines, m.style("ctrl+b/t/k add boolean/input/checkbox · ctrl+o option · ctrl+a correct · ctrl+x remove · ctrl+s save · esc quit",
		lipgloss.NewStyle().Foreground(lipgloss.Color("244"))))
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) valueFor(f field, focused bool, text string) string {
	if focused && f.kind != fieldBool {
		return m.input.View()
	}
	return text
}

func (m Model) hint(focused bool, text string) string {
	if !focused {
		return ""
	}
	return m.style("  ("+text+")", lipgloss.NewStyle().Foreground(lipgloss.Color("244")))
}

func (m Model) errorLines(path string) []string {
	var out []string
	for _, msg := range m.errs[path] {
		out = append(out, m.style("    ! "+msg, lipgloss.NewStyle().Foreground(lipgloss.Color("160"))))
	}
	return out
}

func (m Model) style(text string, s lipgloss.Style) string {
	if m.noColor {
		return text
	}
	return s.Render(text)
}

func boolLabel(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
