package formbuilder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/formbuilder"
)

const sampleResponse = `{
  "templates": [
    {
      "id": 1,
      "title": "Customer Feedback",
      "author": "alice@example.com",
      "questions": [
        {"text": "Your name", "type": "string", "answerCount": 4, "aggregation": {"topAnswers": ["Bob", "Eve"]}},
        {"text": "Age", "type": "integer", "answerCount": 4, "aggregation": {"average": 31.5, "min": 18, "max": 60}},
        {"text": "Subscribe?", "type": "checkbox", "answerCount": 2, "aggregation": {"truePercentage": 50, "falsePercentage": 50}}
      ]
    },
    {"id": 2, "questions": [{"text": "Comments"}]}
  ]
}`

func TestDecodeResponse(t *testing.T) {
	resp, err := formbuilder.DecodeResponse(strings.NewReader(sampleResponse))
	require.NoError(t, err)
	require.Len(t, resp.Templates, 2)

	first := resp.Templates[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Customer Feedback", first.TitleOr("Untitled"))
	assert.Equal(t, "alice@example.com", first.AuthorOr("Unknown"))
	require.Len(t, first.Questions, 3)
	assert.Equal(t, formbuilder.QuestionTypeInteger, first.Questions[1].Type)
	assert.Equal(t, `{"average":31.5,"min":18,"max":60}`, first.Questions[1].AggregationString())

	t.Run("defaults", func(t *testing.T) {
		second := resp.Templates[1]
		assert.Nil(t, second.Title)
		assert.Equal(t, "Untitled", second.TitleOr("Untitled"))
		assert.Equal(t, "Unknown", second.AuthorOr("Unknown"))

		q := second.Questions[0]
		assert.Equal(t, formbuilder.QuestionTypeString, q.Type)
		assert.Equal(t, 0, q.AnswerCount)
		assert.Equal(t, "{}", q.AggregationString())
	})
}

func TestDecodeResponseMissingTemplates(t *testing.T) {
	resp, err := formbuilder.DecodeResponse(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, resp.Templates)
}

func TestDecodeResponseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing id",
			body:  `{"templates": [{"title": "x"}]}`,
			field: "templates[0].id",
		},
		{
			name:  "empty question text",
			body:  `{"templates": [{"id": 1}, {"id": 2}, {"id": 3, "questions": [{"text": ""}]}]}`,
			field: "templates[2].questions[0].text",
		},
		{
			name:  "unknown type",
			body:  `{"templates": [{"id": 1, "questions": [{"text": "q", "type": "radio"}]}]}`,
			field: "templates[0].questions[0].type",
		},
		{
			name:  "negative answer count",
			body:  `{"templates": [{"id": 1, "questions": [{"text": "q", "answerCount": -1}]}]}`,
			field: "templates[0].questions[0].answerCount",
		},
		{
			name:  "aggregation not an object",
			body:  `{"templates": [{"id": 1, "questions": [{"text": "q", "aggregation": [1, 2]}]}]}`,
			field: "templates[0].questions[0].aggregation",
		},
		{
			name:  "top answers not strings",
			body:  `{"templates": [{"id": 1, "questions": [{"text": "q", "aggregation": {"topAnswers": [1, 2]}}]}]}`,
			field: "templates[0].questions[0].aggregation",
		},
		{
			name:  "average not a number",
			body:  `{"templates": [{"id": 1, "questions": [{"text": "q", "aggregation": {"average": "5"}}]}]}`,
			field: "templates[0].questions[0].aggregation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formbuilder.DecodeResponse(strings.NewReader(tt.body))
			require.Error(t, err)

			var validationErr *errors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.True(t, strings.HasPrefix(validationErr.Message, tt.field))
		})
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	_, err := formbuilder.DecodeResponse(strings.NewReader(`{"templates": [`))
	require.Error(t, err)

	var parseErr *errors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "response", parseErr.Source)
	assert.Equal(t, errors.KindData, errors.Classify(err).Kind)
}

func TestTemplatesRoundTrip(t *testing.T) {
	resp, err := formbuilder.DecodeResponse(strings.NewReader(sampleResponse))
	require.NoError(t, err)

	data, err := formbuilder.EncodeTemplates(resp.Templates)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")

	templates, err := formbuilder.DecodeTemplates(data)
	require.NoError(t, err)
	assert.Equal(t, resp.Templates, templates)

	empty, err := formbuilder.EncodeTemplates(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))

	_, err = formbuilder.DecodeTemplates([]byte("  "))
	assert.Error(t, err)
}

func TestQuestionType(t *testing.T) {
	tests := []struct {
		typ   formbuilder.QuestionType
		label string
		color string
		valid bool
	}{
		{formbuilder.QuestionTypeString, "Short Text", "primary", true},
		{formbuilder.QuestionTypeText, "Long Text", "success", true},
		{formbuilder.QuestionTypeInteger, "Number", "warning", true},
		{formbuilder.QuestionTypeCheckbox, "Checkbox", "info", true},
		{formbuilder.QuestionType("rating"), "rating", "secondary", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.typ.Label())
			assert.Equal(t, tt.color, tt.typ.Color())
			assert.Equal(t, tt.valid, tt.typ.IsValid())
		})
	}

	assert.True(t, formbuilder.QuestionTypeText.IsTextual())
	assert.False(t, formbuilder.QuestionTypeCheckbox.IsTextual())
}

func TestParseAggregation(t *testing.T) {
	agg, err := formbuilder.ParseAggregation(`{"average": 5, "min": 1, "max": 9}`)
	require.NoError(t, err)
	assert.Equal(t, 5.0, formbuilder.Float(agg.Average))
	assert.Equal(t, 9.0, formbuilder.Float(agg.Max))
	assert.Equal(t, 0.0, formbuilder.Float(agg.TruePercentage))

	_, err = formbuilder.ParseAggregation(`{not json`)
	assert.Error(t, err)

	assert.True(t, formbuilder.IsEmptyAggregation(" "))
	assert.True(t, formbuilder.IsEmptyAggregation("null"))
	assert.False(t, formbuilder.IsEmptyAggregation("{}"))
	assert.False(t, formbuilder.IsEmptyAggregation(`{"min": 0}`))
}

func TestValidateAPIKey(t *testing.T) {
	assert.NoError(t, formbuilder.ValidateAPIKey("FB_live_123"))

	for _, key := range []string{"", "fb_lower", "XX_123", " FB_leading"} {
		err := formbuilder.ValidateAPIKey(key)
		require.Error(t, err, key)
		assert.True(t, errors.IsValidationError(err))
		assert.Equal(t, errors.MsgInvalidKeyFormat, errors.Classify(err).Message)
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(empty)", formbuilder.MaskAPIKey(""))
	assert.Equal(t, "******", formbuilder.MaskAPIKey("FB_abc"))

	masked := formbuilder.MaskAPIKey("FB_0123456789abcdef")
	assert.True(t, strings.HasPrefix(masked, "FB_"))
	assert.True(t, strings.HasSuffix(masked, "cdef"))
	assert.NotContains(t, masked, "0123")
}
