package records

import (
	"fmt"
	"strconv"

	"github.com/agentstation/utc"
)

// Key identifies a template across imports: the remote id is only unique
// within the API it came from.
type Key struct {
	ExternalID int    `json:"external_id" yaml:"external_id"`
	APIURL     string `json:"api_url" yaml:"api_url"`
}

// String returns the key as "id@url".
func (k Key) String() string {
	return fmt.Sprintf("%d@%s", k.ExternalID, k.APIURL)
}

// Template is a survey template imported from FormBuilder.
type Template struct {
	ID         int64      `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Author     string     `json:"author" yaml:"author"`
	ExternalID int        `json:"external_id" yaml:"external_id"`
	APIURL     string     `json:"api_url" yaml:"api_url"`
	LastSync   utc.Time   `json:"last_sync" yaml:"last_sync"`
	Questions  []Question `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// Key returns the uniqueness key of the template.
func (t *Template) Key() Key {
	return Key{ExternalID: t.ExternalID, APIURL: t.APIURL}
}

// IDString returns the local id as a string, for error messages and URLs.
func (t *Template) IDString() string {
	return strconv.FormatInt(t.ID, 10)
}

// QuestionCount is the number of loaded questions.
func (t *Template) QuestionCount() int {
	return len(t.Questions)
}

// TotalResponses is the highest answer count among the questions,
// 0 when there are none.
func (t *Template) TotalResponses() int {
	total := 0
	for i := range t.Questions {
		if t.Questions[i].AnswerCount > total {
			total = t.Questions[i].AnswerCount
		}
	}
	return total
}

// Summary is a template without its questions but with the derived counts,
// the shape used by list views.
type Summary struct {
	ID             int64    `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Author         string   `json:"author" yaml:"author"`
	ExternalID     int      `json:"external_id" yaml:"external_id"`
	APIURL         string   `json:"api_url" yaml:"api_url"`
	LastSync       utc.Time `json:"last_sync" yaml:"last_sync"`
	QuestionCount  int      `json:"question_count" yaml:"question_count"`
	TotalResponses int      `json:"total_responses" yaml:"total_responses"`
}

// Summarize returns the list view of a template.
func (t *Template) Summarize() Summary {
	return Summary{
		ID:             t.ID,
		Name:           t.Name,
		Author:         t.Author,
		ExternalID:     t.ExternalID,
		APIURL:         t.APIURL,
		LastSync:       t.LastSync,
		QuestionCount:  t.QuestionCount(),
		TotalResponses: t.TotalResponses(),
	}
}
