package render

import (
	"fmt"
	"strings"

	"github.com/agentstation/formsync/pkg/formbuilder"
)

// Text returns a one-line plain text summary of a question's aggregation data.
func Text(typ formbuilder.QuestionType, data string) string {
	if formbuilder.IsEmptyAggregation(data) {
		return "no data available"
	}

	agg, err := formbuilder.ParseAggregation(data)
	if err != nil {
		return "error parsing data: " + err.Error()
	}

	switch {
	case typ == formbuilder.QuestionTypeInteger:
		return fmt.Sprintf("avg %s, min %s, max %s",
			formatNumber(agg.Average), formatNumber(agg.Min), formatNumber(agg.Max))
	case typ.IsTextual():
		answers := topAnswers(agg)
		if len(answers) == 0 {
			return "no answers yet"
		}
		return "top: " + strings.Join(answers, ", ")
	case typ == formbuilder.QuestionTypeCheckbox:
		return fmt.Sprintf("yes %s%%, no %s%%",
			formatNumber(agg.TruePercentage), formatNumber(agg.FalsePercentage))
	default:
		return ""
	}
}
