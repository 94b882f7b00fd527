package output

import (
	"bytes"
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/records"
)

func sampleTemplates() []records.Template {
	return []records.Template{
		{
			ID:         1,
			Name:       "Feedback",
			Author:     "alice@example.com",
			ExternalID: 10,
			APIURL:     "http://fb",
			LastSync:   utc.Now(),
			Questions: []records.Question{
				{ID: 1, Text: "Age", Type: formbuilder.QuestionTypeInteger, AnswerCount: 4, AggregationData: `{"average":5,"min":1,"max":9}`},
			},
		},
		{ID: 2, Name: "Empty", Author: "bob", ExternalID: 11},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{"External Id", "Last Sync"}, Headers("external_id", "last_sync"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, TemplatesToData(sampleTemplates())))

	out := buf.String()
	assert.Contains(t, out, "Feedback")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "4")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"templates": 2}))
	assert.JSONEq(t, `{"templates": 2}`, buf.String())
}

func TestQuestionsToData(t *testing.T) {
	data := QuestionsToData(sampleTemplates()[0].Questions)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"1", "Age", "Number", "4", "avg 5, min 1, max 9"}, data.Rows[0])
}

func TestStructuredFormatters(t *testing.T) {
	summaries := TemplateSummaries(sampleTemplates())

	var jsonBuf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&jsonBuf, summaries))
	assert.Contains(t, jsonBuf.String(), `"question_count": 1`)
	assert.Contains(t, jsonBuf.String(), `"total_responses": 4`)

	var yamlBuf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&yamlBuf, QuestionViews(sampleTemplates()[0].Questions)))
	assert.Contains(t, yamlBuf.String(), "type_label: Number")
	assert.Contains(t, yamlBuf.String(), "type_color: warning")
}
