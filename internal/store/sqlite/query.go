package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/agentstation/utc"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/records"
)

// querier is what *sql.DB and *sql.Tx have in common.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*records.Template, error) {
	var (
		t        records.Template
		lastSync sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Author, &t.ExternalID, &t.APIURL, &lastSync); err != nil {
		return nil, err
	}
	if lastSync.Valid && lastSync.String != "" {
		parsed, err := utc.Parse(time.RFC3339Nano, lastSync.String)
		if err != nil {
			return nil, errors.WrapParse("timestamp", "last_sync", err)
		}
		t.LastSync = parsed
	}
	return &t, nil
}

func listQuestions(ctx context.Context, q querier, templateID int64) ([]records.Question, error) {
	return queryQuestions(ctx, q, `
		SELECT id, template_id, text, type, answer_count, aggregation_data
		FROM question
		WHERE template_id = ?
		ORDER BY id`, templateID)
}

func queryQuestions(ctx context.Context, q querier, query string, args ...any) ([]records.Question, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapResource("list", "question", "", err)
	}
	defer rows.Close()

	questions := []records.Question{}
	for rows.Next() {
		var (
			question records.Question
			typ      string
		)
		err := rows.Scan(&question.ID, &question.TemplateID, &question.Text, &typ,
			&question.AnswerCount, &question.AggregationData)
		if err != nil {
			return nil, errors.WrapResource("list", "question", "", err)
		}
		question.Type = formbuilder.QuestionType(typ)
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("list", "question", "", err)
	}
	return questions, nil
}

// formatTime stores timestamps as RFC 3339 text, NULL when unset.
func formatTime(t utc.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Time.UTC().Format(time.RFC3339Nano)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// notFoundOr maps sql.ErrNoRows to a NotFoundError and wraps anything else.
func notFoundOr(err error, op, resource string, id int64) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(resource, idString(id))
	}
	return errors.WrapResource(op, resource, idString(id), err)
}

// requireRow turns an update or delete that touched nothing into a NotFoundError.
func requireRow(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WrapResource("update", resource, idString(id), err)
	}
	if n == 0 {
		return errors.NewNotFoundError(resource, idString(id))
	}
	return nil
}

func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	return stderrors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == code
}
