package dto

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	helper "quizbuilder_backend/internals/helpers"
)

// DecodeQuizzesYAML reads quiz definitions written in YAML, either a single
// quiz mapping or a sequence of them. Each quiz goes through the same
// schema and content checks as an HTTP create request.
//
//	title: Capitals
//	questions:
//	  - id: q1
//	    type: checkbox
//	    question: Which are capitals?
//	    options: [Paris, Lyon]
//	    correctAnswers: [Paris]
func DecodeQuizzesYAML(raw []byte) ([]*CreateQuizRequest, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, helper.NewBadRequest("invalid YAML", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	var docs []any
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&docs); err != nil {
			return nil, helper.NewBadRequest("invalid YAML", err)
		}
	case yaml.MappingNode:
		var one any
		if err := doc.Decode(&one); err != nil {
			return nil, helper.NewBadRequest("invalid YAML", err)
		}
		docs = []any{one}
	default:
		return nil, helper.NewBadRequest("YAML must be a quiz or a list of quizzes", nil)
	}

	out := make([]*CreateQuizRequest, 0, len(docs))
	for i, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			return nil, helper.NewBadRequest(fmt.Sprintf("quiz %d is not representable as JSON", i), err)
		}
		req, err := ParseCreateQuizRequest(b)
		if err != nil {
			return nil, prefixFields(err, fmt.Sprintf("quizzes.%d", i), len(docs) > 1)
		}
		out = append(out, req)
	}
	return out, nil
}

func prefixFields(err error, prefix string, enabled bool) error {
	ae, ok := err.(*helper.AppError)
	if !ok || !enabled || ae.Fields == nil {
		return err
	}
	fe := helper.FieldErrors{}
	for path, msgs := range ae.Fields {
		p := prefix
		if path != "" {
			p += "." + path
		}
		for _, m := range msgs {
			fe.Add(p, m)
		}
	}
	return helper.NewValidation(fe)
}
