package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "quizbuilder_backend/internals/features/quizzes/model"
	helper "quizbuilder_backend/internals/helpers"
)

func parseFields(t *testing.T, body string) helper.FieldErrors {
	t.Helper()
	_, err := ParseCreateQuizRequest([]byte(body))
	require.Error(t, err)
	ae, ok := err.(*helper.AppError)
	require.True(t, ok, "expected *helper.AppError, got %T", err)
	require.Equal(t, helper.KindValidation, ae.Kind, "error: %v", err)
	return ae.Fields
}

func TestParseCreateQuizRequestAcceptsEveryType(t *testing.T) {
	req, err := ParseCreateQuizRequest([]byte(`{
		"title": "Mixed",
		"questions": [
			{"id":"a","type":"boolean","question":"Water is wet?","correctAnswer":false},
			{"id":"b","type":"input","question":"Capital of France?","correctAnswer":"Paris"},
			{"id":"c","type":"checkbox","question":"Pick even","options":["1","2"],"correctAnswers":["2"]}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Mixed", req.Title)
	require.Len(t, req.Questions, 3)
	assert.Equal(t, &model.BooleanQuestion{ID: "a", Question: "Water is wet?", CorrectAnswer: false}, req.Questions[0])
	assert.Equal(t, &model.CheckboxQuestion{ID: "c", Question: "Pick even", Options: []string{"1", "2"}, CorrectAnswers: []string{"2"}}, req.Questions[2])
}

func TestParseCreateQuizRequestMalformedJSON(t *testing.T) {
	_, err := ParseCreateQuizRequest([]byte(`{"title": `))
	require.Error(t, err)
	assert.Equal(t, helper.KindBadRequest, helper.KindOf(err))
}

func TestZeroQuestionsRejected(t *testing.T) {
	fe := parseFields(t, `{"title":"T","questions":[]}`)
	assert.Equal(t, []string{"At least one question is required"}, fe["questions"])
}

func TestCheckboxOptionCountBoundary(t *testing.T) {
	fe := parseFields(t, `{"title":"T","questions":[
		{"id":"a","type":"checkbox","question":"?","options":["A"],"correctAnswers":["A"]}
	]}`)
	assert.Equal(t, []string{"At least 2 options are required"}, fe["questions.0.options"])

	_, err := ParseCreateQuizRequest([]byte(`{"title":"T","questions":[
		{"id":"a","type":"checkbox","question":"?","options":["A","B"],"correctAnswers":["A"]}
	]}`))
	assert.NoError(t, err)
}

func TestBooleanAnswerMustBeJSONBoolean(t *testing.T) {
	fe := parseFields(t, `{"title":"T","questions":[
		{"id":"a","type":"boolean","question":"?","correctAnswer":"true"}
	]}`)
	assert.Contains(t, fe["questions.0.correctAnswer"], "must be of type boolean")
}

func TestVariantFieldsMustMatchTag(t *testing.T) {
	fe := parseFields(t, `{"title":"T","questions":[
		{"id":"a","type":"boolean","question":"?","correctAnswer":true,"options":["x","y"]}
	]}`)
	assert.Equal(t, []string{"is not allowed here"}, fe["questions.0.options"])

	fe = parseFields(t, `{"title":"T","questions":[
		{"id":"a","type":"checkbox","question":"?","options":["x","y"]}
	]}`)
	assert.Equal(t, []string{"is required"}, fe["questions.0.correctAnswers"])
}

func TestUnknownTypeReportedOnTypeField(t *testing.T) {
	fe := parseFields(t, `{"title":"T","questions":[{"id":"a","type":"radio","question":"?"}]}`)
	assert.Equal(t, []string{"must be one of boolean, input, checkbox"}, fe["questions.0.type"])
}

func TestMissingTopLevelFields(t *testing.T) {
	fe := parseFields(t, `{"questions":[{"id":"a","type":"input","question":"?","correctAnswer":"x"}],"extra":1}`)
	assert.Equal(t, []string{"is required"}, fe["title"])
	assert.Equal(t, []string{"is not allowed here"}, fe["extra"])
}

func TestContentRulesPointAtOffendingField(t *testing.T) {
	fe := parseFields(t, `{"title":"   ","questions":[
		{"id":"a","type":"input","question":"","correctAnswer":" "},
		{"id":"b","type":"checkbox","question":"Pick","options":["A",""],"correctAnswers":[]},
		{"id":"c","type":"checkbox","question":"Pick","options":["A","A"],"correctAnswers":["Z"]}
	]}`)

	assert.Equal(t, []string{"Title is required"}, fe["title"])
	assert.Equal(t, []string{"Question is required"}, fe["questions.0.question"])
	assert.Equal(t, []string{"Correct answer is required"}, fe["questions.0.correctAnswer"])
	assert.Equal(t, []string{"Option text is required"}, fe["questions.1.options.1"])
	assert.Equal(t, []string{"Select at least one correct answer"}, fe["questions.1.correctAnswers"])
	assert.Equal(t, []string{"Options must be unique"}, fe["questions.2.options"])
	assert.Equal(t, []string{"Correct answers must be chosen from the options (not found: Z)"}, fe["questions.2.correctAnswers"])
}

func TestValidateCreateQuizRequestTyped(t *testing.T) {
	valid := &CreateQuizRequest{Title: "T", Questions: model.QuestionList{
		&model.BooleanQuestion{ID: "a", Question: "?", CorrectAnswer: true},
	}}
	assert.Nil(t, ValidateCreateQuizRequest(valid))

	missing := &CreateQuizRequest{Title: "T", Questions: model.QuestionList{nil}}
	fe := ValidateCreateQuizRequest(missing)
	assert.True(t, fe.Has("questions.0"))

	var nilCheckbox *model.CheckboxQuestion
	fe = ValidateCreateQuizRequest(&CreateQuizRequest{Title: "T", Questions: model.QuestionList{nilCheckbox}})
	assert.True(t, fe.Has("questions.0"))

	assert.True(t, ValidateCreateQuizRequest(nil).Has(""))
}

func TestToModelAndBack(t *testing.T) {
	req := &CreateQuizRequest{Title: "Round trip", Questions: model.QuestionList{
		&model.InputQuestion{ID: "a", Question: "?", CorrectAnswer: "x"},
		&model.CheckboxQuestion{ID: "b", Question: "?", Options: []string{"A", "B"}, CorrectAnswers: []string{"B"}},
	}}
	m, err := req.ToModel()
	require.NoError(t, err)

	resp, err := FromModel(m)
	require.NoError(t, err)
	assert.Equal(t, req.Title, resp.Title)
	assert.Equal(t, req.Questions, resp.Questions)
	assert.Equal(t, 2, ToListItem(m).QuestionsCount)
}
