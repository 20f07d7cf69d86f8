package dto

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	helper "quizbuilder_backend/internals/helpers"
)

// createQuizSchema pins the wire shape: strict JSON types and, per question
// type, exactly that variant's fields. Content rules (non-blank, counts,
// subset) live in quiz_validation.go.
const createQuizSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "questions"],
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "questions": {"type": "array", "items": {"$ref": "#/definitions/question"}}
  },
  "definitions": {
    "question": {
      "type": "object",
      "required": ["id", "type", "question"],
      "properties": {
        "id": {"type": "string"},
        "type": {"enum": ["boolean", "input", "checkbox"]},
        "question": {"type": "string"}
      },
      "allOf": [
        {
          "if": {"required": ["type"], "properties": {"type": {"const": "boolean"}}},
          "then": {
            "required": ["correctAnswer"],
            "additionalProperties": false,
            "properties": {
              "id": {}, "type": {}, "question": {},
              "correctAnswer": {"type": "boolean"}
            }
          }
        },
        {
          "if": {"required": ["type"], "properties": {"type": {"const": "input"}}},
          "then": {
            "required": ["correctAnswer"],
            "additionalProperties": false,
            "properties": {
              "id": {}, "type": {}, "question": {},
              "correctAnswer": {"type": "string"}
            }
          }
        },
        {
          "if": {"required": ["type"], "properties": {"type": {"const": "checkbox"}}},
          "then": {
            "required": ["options", "correctAnswers"],
            "additionalProperties": false,
            "properties": {
              "id": {}, "type": {}, "question": {},
              "options": {"type": "array", "items": {"type": "string"}},
              "correctAnswers": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      ]
    }
  }
}`

var quizSchema = mustSchema(createQuizSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("dto: invalid quiz schema: %v", err))
	}
	return s
}

// wrapper errors that only restate their nested errors
var skippedSchemaErrors = map[string]bool{
	"condition_then": true,
	"condition_else": true,
	"number_all_of":  true,
	"number_any_of":  true,
	"number_one_of":  true,
}

// checkSchema validates raw JSON bytes and returns field errors, or nil.
func checkSchema(raw []byte) (helper.FieldErrors, error) {
	res, err := quizSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}

	fe := helper.FieldErrors{}
	for _, e := range res.Errors() {
		if skippedSchemaErrors[e.Type()] {
			continue
		}
		path, msg := schemaErrorPath(e), schemaErrorMessage(e)
		fe.Add(path, msg)
	}
	if len(fe) == 0 {
		fe.Add("", "payload does not match the quiz shape")
	}
	return fe, nil
}

func schemaErrorPath(e gojsonschema.ResultError) string {
	base := e.Field()
	if base == "(root)" {
		base = ""
	}
	switch e.Type() {
	case "required", "additional_property_not_allowed":
		if prop, ok := e.Details()["property"].(string); ok && prop != "" && !strings.HasSuffix(base, "."+prop) && base != prop {
			if base == "" {
				return prop
			}
			return base + "." + prop
		}
	}
	return base
}

func schemaErrorMessage(e gojsonschema.ResultError) string {
	d := e.Details()
	switch e.Type() {
	case "required":
		return "is required"
	case "additional_property_not_allowed":
		return "is not allowed here"
	case "invalid_type":
		return fmt.Sprintf("must be of type %v", d["expected"])
	case "enum":
		return "must be one of boolean, input, checkbox"
	default:
		return e.Description()
	}
}
