package formbuilder

import (
	"encoding/json"
	"strings"
)

// Aggregation is the typed view of a question's aggregation data.
// Which fields are present depends on the question type: numbers carry
// Average/Min/Max, text carries TopAnswers, checkboxes carry the
// percentages.
type Aggregation struct {
	Average         *float64 `json:"average,omitempty"`
	Min             *float64 `json:"min,omitempty"`
	Max             *float64 `json:"max,omitempty"`
	TopAnswers      []string `json:"topAnswers,omitempty"`
	TruePercentage  *float64 `json:"truePercentage,omitempty"`
	FalsePercentage *float64 `json:"falsePercentage,omitempty"`
}

// ParseAggregation decodes stored aggregation text.
func ParseAggregation(data string) (*Aggregation, error) {
	var agg Aggregation
	if err := json.Unmarshal([]byte(data), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// IsEmptyAggregation reports whether data carries no aggregation at all.
// An empty object is still aggregation data: every field reads as zero.
func IsEmptyAggregation(data string) bool {
	switch strings.TrimSpace(data) {
	case "", "null":
		return true
	default:
		return false
	}
}

// Float returns the value of p, or 0 when p is nil.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
