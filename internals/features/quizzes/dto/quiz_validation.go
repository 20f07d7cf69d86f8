package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	model "quizbuilder_backend/internals/features/quizzes/model"
	helper "quizbuilder_backend/internals/helpers"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(checkboxAnswersInOptions, model.CheckboxQuestion{})
	return v
}

// every correct answer must name one of the options
func checkboxAnswersInOptions(sl validator.StructLevel) {
	q := sl.Current().Interface().(model.CheckboxQuestion)
	if missing := q.MissingAnswers(); len(missing) > 0 {
		sl.ReportError(q.CorrectAnswers, "correctAnswers", "CorrectAnswers", "subset", strings.Join(missing, ", "))
	}
}

// ParseCreateQuizRequest is the server-side entry point: raw body in,
// typed payload or *helper.AppError out.
func ParseCreateQuizRequest(raw []byte) (*CreateQuizRequest, error) {
	if !json.Valid(raw) {
		return nil, helper.NewBadRequest("invalid JSON body", nil)
	}
	fe, err := checkSchema(raw)
	if err != nil {
		return nil, helper.NewBadRequest("invalid JSON body", err)
	}
	if fe != nil {
		return nil, helper.NewValidation(fe)
	}

	var req CreateQuizRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, helper.NewBadRequest("invalid quiz payload", err)
	}
	if fe := ValidateCreateQuizRequest(&req); fe != nil {
		return nil, helper.NewValidation(fe)
	}
	return &req, nil
}

// ValidateCreateQuizRequest applies the content rules to a typed payload.
// It returns nil when the payload is valid.
func ValidateCreateQuizRequest(req *CreateQuizRequest) helper.FieldErrors {
	fe := helper.FieldErrors{}
	if req == nil {
		fe.Add("", "payload is required")
		return fe
	}

	collect(fe, "", validate.Struct(req))
	for i, q := range req.Questions {
		prefix := fmt.Sprintf("questions.%d", i)
		switch v := q.(type) {
		case *model.BooleanQuestion, *model.InputQuestion, *model.CheckboxQuestion:
			if reflect.ValueOf(v).IsNil() {
				fe.Add(prefix, "Question is missing")
				continue
			}
			collect(fe, prefix, validate.Struct(v))
		case nil:
			fe.Add(prefix, "Question is missing")
		default:
			fe.Add(prefix+".type", fmt.Sprintf("unsupported question %T", q))
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

func collect(fe helper.FieldErrors, prefix string, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add(prefix, err.Error())
		return
	}
	for _, e := range verrs {
		path := fieldPath(e.Namespace())
		if prefix != "" {
			path = prefix + "." + path
		}
		fe.Add(path, fieldMessage(e))
	}
}

// "CheckboxQuestion.options[1]" -> "options.1"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func fieldMessage(e validator.FieldError) string {
	name := e.Field()
	element := false
	if i := strings.IndexByte(name, '['); i >= 0 {
		name, element = name[:i], true
	}

	switch e.Tag() {
	case "notblank", "required":
		switch {
		case name == "title":
			return "Title is required"
		case name == "question":
			return "Question is required"
		case name == "id":
			return "Question id is required"
		case name == "correctAnswer":
			return "Correct answer is required"
		case name == "options" && element:
			return "Option text is required"
		case name == "correctAnswers" && element:
			return "Correct answer must not be empty"
		}
		return "is required"
	case "min":
		switch name {
		case "questions":
			return "At least one question is required"
		case "options":
			return fmt.Sprintf("At least %s options are required", e.Param())
		case "correctAnswers":
			return "Select at least one correct answer"
		}
		return fmt.Sprintf("must contain at least %s items", e.Param())
	case "unique":
		if name == "options" {
			return "Options must be unique"
		}
		return "Correct answers must not repeat"
	case "subset":
		return fmt.Sprintf("Correct answers must be chosen from the options (not found: %s)", e.Param())
	}
	return fmt.Sprintf("failed %q validation", e.Tag())
}
