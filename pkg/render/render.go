// Package render turns stored aggregation data into display fragments.
//
// Render produces the HTML summary shown next to a question; Text produces
// a one-line summary for terminals. Both are pure and never fail: a broken
// aggregation is reported inside the output instead.
package render

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/formbuilder"
)

const (
	noData    = `<p>No data available</p>`
	noAnswers = `<p>No answers yet</p>`
)

var funcs = template.FuncMap{
	"num": formatNumber,
}

var fragments = template.Must(template.New("aggregation").Funcs(funcs).Parse(`
{{- define "integer" -}}
<div class="row">
<div class="col-4 text-center"><strong>Average</strong><br/><span class="badge badge-primary">{{ num .Average }}</span></div>
<div class="col-4 text-center"><strong>Min</strong><br/><span class="badge badge-info">{{ num .Min }}</span></div>
<div class="col-4 text-center"><strong>Max</strong><br/><span class="badge badge-warning">{{ num .Max }}</span></div>
</div>
{{- end -}}

{{- define "answers" -}}
<strong>Top Answers:</strong><ul>{{ range . }}<li>{{ . }}</li>{{ end }}</ul>
{{- end -}}

{{- define "checkbox" -}}
<div class="progress" style="height: 25px;">
<div class="progress-bar bg-success" style="width: {{ num .TruePercentage }}%">Yes ({{ num .TruePercentage }}%)</div>
<div class="progress-bar bg-danger" style="width: {{ num .FalsePercentage }}%">No ({{ num .FalsePercentage }}%)</div>
</div>
{{- end -}}

{{- define "error" -}}
<p class="text-danger">Error parsing data: {{ . }}</p>
{{- end -}}
`))

// Render returns the HTML summary of a question's aggregation data.
func Render(typ formbuilder.QuestionType, data string) template.HTML {
	if formbuilder.IsEmptyAggregation(data) {
		return noData
	}

	agg, err := formbuilder.ParseAggregation(data)
	if err != nil {
		return execute("error", err.Error())
	}

	var body template.HTML
	switch {
	case typ == formbuilder.QuestionTypeInteger:
		body = execute("integer", agg)
	case typ.IsTextual():
		answers := topAnswers(agg)
		if len(answers) == 0 {
			body = noAnswers
		} else {
			body = execute("answers", answers)
		}
	case typ == formbuilder.QuestionTypeCheckbox:
		body = execute("checkbox", agg)
	}

	return `<div class="formbuilder-aggregation">` + body + `</div>`
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		// only reachable with a broken template definition
		return template.HTML(`<p class="text-danger">` + template.HTMLEscapeString(err.Error()) + `</p>`) //nolint:gosec
	}
	return template.HTML(buf.String()) //nolint:gosec
}

func topAnswers(agg *formbuilder.Aggregation) []string {
	if len(agg.TopAnswers) > constants.MaxTopAnswers {
		return agg.TopAnswers[:constants.MaxTopAnswers]
	}
	return agg.TopAnswers
}

// formatNumber prints whole numbers without a fraction and nil as 0.
func formatNumber(p *float64) string {
	return strconv.FormatFloat(formbuilder.Float(p), 'f', -1, 64)
}
