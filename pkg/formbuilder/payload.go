package formbuilder

import (
	"bytes"
	"encoding/json"
)

// Response is the body of the aggregates endpoint.
type Response struct {
	Templates []Template `json:"templates"`
}

// Template is one survey template as reported by the remote API.
// Title and Author are pointers so that a missing value can be told
// apart from an empty one: on update a missing value keeps the local one.
type Template struct {
	ID        int        `json:"id"`
	Title     *string    `json:"title,omitempty"`
	Author    *string    `json:"author,omitempty"`
	Questions []Question `json:"questions"`
}

// TitleOr returns the title, or def when the payload has none.
func (t *Template) TitleOr(def string) string {
	if t.Title == nil {
		return def
	}
	return *t.Title
}

// AuthorOr returns the author, or def when the payload has none.
func (t *Template) AuthorOr(def string) string {
	if t.Author == nil {
		return def
	}
	return *t.Author
}

// Question is one question of a template with its aggregated answers.
type Question struct {
	Text        string          `json:"text"`
	Type        QuestionType    `json:"type,omitempty"`
	AnswerCount int             `json:"answerCount"`
	Aggregation json.RawMessage `json:"aggregation,omitempty"`
}

// AggregationString returns the aggregation as compact JSON text,
// "{}" when absent.
func (q *Question) AggregationString() string {
	if len(bytes.TrimSpace(q.Aggregation)) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, q.Aggregation); err != nil {
		return string(q.Aggregation)
	}
	return buf.String()
}

// applyDefaults fills optional fields that were left out of the payload.
func (q *Question) applyDefaults() {
	if q.Type == "" {
		q.Type = QuestionTypeString
	}
	if len(bytes.TrimSpace(q.Aggregation)) == 0 || bytes.Equal(bytes.TrimSpace(q.Aggregation), []byte("null")) {
		q.Aggregation = json.RawMessage("{}")
	}
}

// String is a convenience for building payloads in code.
func String(s string) *string {
	return &s
}
