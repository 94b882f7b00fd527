package records

import (
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/render"
)

// Question is one question of a template. Text is the merge key within
// its template; AggregationData is the raw JSON object reported by the API.
type Question struct {
	ID              int64                    `json:"id" yaml:"id"`
	TemplateID      int64                    `json:"template_id" yaml:"template_id"`
	Text            string                   `json:"text" yaml:"text"`
	Type            formbuilder.QuestionType `json:"type" yaml:"type"`
	AnswerCount     int                      `json:"answer_count" yaml:"answer_count"`
	AggregationData string                   `json:"aggregation_data" yaml:"aggregation_data"`
}

// TypeColor is the display color tag of the question type.
func (q *Question) TypeColor() string {
	return q.Type.Color()
}

// TypeLabel is the human label of the question type.
func (q *Question) TypeLabel() string {
	return q.Type.Label()
}

// AggregationDisplay renders the aggregation data as an HTML fragment.
func (q *Question) AggregationDisplay() string {
	return string(render.Render(q.Type, q.AggregationData))
}

// AggregationSummary renders the aggregation data as one line of text.
func (q *Question) AggregationSummary() string {
	return render.Text(q.Type, q.AggregationData)
}

// SameContent reports whether q already holds the synced fields of other.
func (q *Question) SameContent(other *Question) bool {
	return q.Type == other.Type &&
		q.AnswerCount == other.AnswerCount &&
		q.AggregationData == other.AggregationData
}

// View is a question with its derived display fields, the shape used by
// the HTTP surface.
type View struct {
	Question `yaml:",inline"`
	TypeColor          string `json:"type_color" yaml:"type_color"`
	TypeLabel          string `json:"type_label" yaml:"type_label"`
	AggregationDisplay string `json:"aggregation_display" yaml:"aggregation_display"`
}

// NewView derives the display fields of q.
func NewView(q Question) View {
	return View{
		Question:           q,
		TypeColor:          q.TypeColor(),
		TypeLabel:          q.TypeLabel(),
		AggregationDisplay: q.AggregationDisplay(),
	}
}
