// Package viewer renders stored quizzes and their answer keys for the terminal.
package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	dto "quizbuilder_backend/internals/features/quizzes/dto"
	model "quizbuilder_backend/internals/features/quizzes/model"
)

const dateLayout = "2 Jan 2006 15:04"

// Options configures rendering.
type Options struct {
	NoColor bool
}

var (
	titleColor   = lipgloss.Color("33")
	labelColor   = lipgloss.Color("242")
	correctColor = lipgloss.Color("42")
	mutedColor   = lipgloss.Color("244")
)

// RenderQuiz renders one quiz: title, every question with its type label,
// and the answer key.
func RenderQuiz(q *dto.QuizResponse, opts Options) string {
	lines := []string{
		stylize(q.Title, opts.NoColor, lipgloss.NewStyle().Bold(true).Foreground(titleColor)),
		stylize(fmt.Sprintf("%s · created %s", pluralQuestions(len(q.Questions)), formatDate(q.CreatedAt)),
			opts.NoColor, lipgloss.NewStyle().Foreground(mutedColor)),
		"",
	}
	for i, question := range q.Questions {
		lines = append(lines, renderQuestion(i, question, opts)...)
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

func renderQuestion(i int, q model.Question, opts Options) []string {
	header := fmt.Sprintf("Question %d  [%s]", i+1, strings.ToUpper(string(q.QuestionType())))
	lines := []string{
		stylize(header, opts.NoColor, lipgloss.NewStyle().Bold(true).Foreground(labelColor)),
		"  " + q.QuestionText(),
	}

	switch v := q.(type) {
	case *model.BooleanQuestion:
		lines = append(lines, "  Answer: "+correct(boolLabel(v.CorrectAnswer), opts))
	case *model.InputQuestion:
		lines = append(lines, "  Answer: "+correct(v.CorrectAnswer, opts))
	case *model.CheckboxQuestion:
		for _, opt := range v.Options {
			if v.IsCorrect(opt) {
				lines = append(lines, "  [x] "+correct(opt, opts))
			} else {
				lines = append(lines, "  [ ] "+opt)
			}
		}
	default:
		lines = append(lines, fmt.Sprintf("  (unsupported question %T)", q))
	}
	return lines
}

// RenderList renders the quiz index, one quiz per line.
func RenderList(items []dto.QuizListItem, opts Options) string {
	if len(items) == 0 {
		return stylize("No quizzes yet.", opts.NoColor, lipgloss.NewStyle().Foreground(mutedColor)) + "\n"
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s  %s\n",
			stylize(it.ID.String(), opts.NoColor, lipgloss.NewStyle().Foreground(mutedColor)),
			stylize(it.Title, opts.NoColor, lipgloss.NewStyle().Bold(true)))
		fmt.Fprintf(&b, "    %s · created %s\n", pluralQuestions(it.QuestionsCount), formatDate(it.CreatedAt))
	}
	return b.String()
}

func boolLabel(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func pluralQuestions(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func correct(text string, opts Options) string {
	return stylize(text, opts.NoColor, lipgloss.NewStyle().Foreground(correctColor))
}

func stylize(text string, noColor bool, style lipgloss.Style) string {
	if noColor {
		return text
	}
	return style.Render(text)
}
