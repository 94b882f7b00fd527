package output

import (
	"strconv"
	"time"

	"github.com/agentstation/formsync/pkg/records"
)

// TemplatesToData lays out templates with their derived counts.
func TemplatesToData(templates []records.Template) Data {
	data := Data{
		Headers:         Headers("id", "name", "author", "external_id", "questions", "responses", "last_sync"),
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
	for i := range templates {
		t := &templates[i]
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			t.Author,
			strconv.Itoa(t.ExternalID),
			strconv.Itoa(t.QuestionCount()),
			strconv.Itoa(t.TotalResponses()),
			formatSync(t),
		})
	}
	return data
}

// QuestionsToData lays out questions with a one-line aggregation summary.
func QuestionsToData(questions []records.Question) Data {
	data := Data{
		Headers:         Headers("id", "text", "type", "answers", "summary"),
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	for i := range questions {
		q := &questions[i]
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(q.ID, 10),
			q.Text,
			q.TypeLabel(),
			strconv.Itoa(q.AnswerCount),
			q.AggregationSummary(),
		})
	}
	return data
}

// QuestionViews adds the derived display fields, for structured output.
func QuestionViews(questions []records.Question) []records.View {
	views := make([]records.View, 0, len(questions))
	for _, q := range questions {
		views = append(views, records.NewView(q))
	}
	return views
}

// TemplateSummaries drops the questions and keeps the counts, for structured output.
func TemplateSummaries(templates []records.Template) []records.Summary {
	summaries := make([]records.Summary, 0, len(templates))
	for i := range templates {
		summaries = append(summaries, templates[i].Summarize())
	}
	return summaries
}

func formatSync(t *records.Template) string {
	if t.LastSync.IsZero() {
		return "never"
	}
	return t.LastSync.Time.Local().Format(time.DateTime)
}
