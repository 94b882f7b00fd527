package formbuilder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/agentstation/formsync/pkg/errors"
)

// DecodeResponse reads and validates an aggregates response body.
// A body without a "templates" key decodes to an empty list.
func DecodeResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, errors.WrapParse("json", "response", err)
	}
	if err := ValidateTemplates(resp.Templates); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DecodeTemplates decodes and validates a bare template list, the form in
// which the wizard keeps its preview data.
func DecodeTemplates(data []byte) ([]Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParseError("json", "preview", "empty input", nil)
	}
	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, errors.WrapParse("json", "preview", err)
	}
	if err := ValidateTemplates(templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// EncodeTemplates renders templates as indented JSON.
func EncodeTemplates(templates []Template) ([]byte, error) {
	if templates == nil {
		templates = []Template{}
	}
	return json.MarshalIndent(templates, "", "  ")
}

// ValidateTemplates checks every template and fills question defaults in place.
func ValidateTemplates(templates []Template) error {
	for i := range templates {
		if err := templates[i].validate(fmt.Sprintf("templates[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single template and fills question defaults in place.
func (t *Template) Validate() error {
	return t.validate("template")
}

func (t *Template) validate(path string) error {
	if t.ID <= 0 {
		return invalid(path+".id", t.ID, "template id must be a positive integer")
	}
	for i := range t.Questions {
		if err := t.Questions[i].validate(fmt.Sprintf("%s.questions[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (q *Question) validate(path string) error {
	q.applyDefaults()

	if q.Text == "" {
		return invalid(path+".text", q.Text, "question text is required")
	}
	if !q.Type.IsValid() {
		return invalid(path+".type", q.Type, fmt.Sprintf("unknown question type %q", q.Type))
	}
	if q.AnswerCount < 0 {
		return invalid(path+".answerCount", q.AnswerCount, "answer count cannot be negative")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(q.Aggregation, &obj); err != nil {
		return invalid(path+".aggregation", string(q.Aggregation), "aggregation must be a JSON object")
	}
	if err := json.Unmarshal(q.Aggregation, &Aggregation{}); err != nil {
		return invalid(path+".aggregation", string(q.Aggregation), "aggregation has a field of the wrong type")
	}
	q.Aggregation = json.RawMessage(q.AggregationString())
	return nil
}

func invalid(field string, value any, message string) error {
	return errors.NewValidationError(field, value, field+": "+message)
}
