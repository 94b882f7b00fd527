package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/records"
)

type tx struct {
	tx *sql.Tx
}

// Ensure tx implements records.Tx
var _ records.Tx = (*tx)(nil)

func (t *tx) FindTemplate(ctx context.Context, key records.Key) (*records.Template, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT id, name, author, external_id, api_url, last_sync
		FROM template
		WHERE external_id = ? AND api_url = ?`, key.ExternalID, key.APIURL)

	tpl, err := scanTemplate(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("template", key.String())
	}
	if err != nil {
		return nil, errors.WrapResource("find", "template", key.String(), err)
	}
	return tpl, nil
}

func (t *tx) CreateTemplate(ctx context.Context, tpl *records.Template) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO template (name, author, external_id, api_url, last_sync)
		VALUES (?, ?, ?, ?, ?)`,
		tpl.Name, tpl.Author, tpl.ExternalID, tpl.APIURL, formatTime(tpl.LastSync))
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return errors.NewAlreadyExistsError("template", tpl.Key().String(), err)
		}
		return errors.WrapResource("create", "template", tpl.Key().String(), err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.WrapResource("create", "template", tpl.Key().String(), err)
	}
	tpl.ID = id
	return nil
}

func (t *tx) UpdateTemplate(ctx context.Context, tpl *records.Template) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE template SET name = ?, author = ?, last_sync = ?
		WHERE id = ?`,
		tpl.Name, tpl.Author, formatTime(tpl.LastSync), tpl.ID)
	if err != nil {
		return errors.WrapResource("update", "template", tpl.IDString(), err)
	}
	return requireRow(res, "template", tpl.ID)
}

func (t *tx) Questions(ctx context.Context, templateID int64) ([]records.Question, error) {
	return listQuestions(ctx, t.tx, templateID)
}

func (t *tx) CreateQuestion(ctx context.Context, q *records.Question) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO question (template_id, text, type, answer_count, aggregation_data)
		VALUES (?, ?, ?, ?, ?)`,
		q.TemplateID, q.Text, string(q.Type), q.AnswerCount, q.AggregationData)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return errors.NewNotFoundError("template", idString(q.TemplateID))
		}
		return errors.WrapResource("create", "question", q.Text, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.WrapResource("create", "question", q.Text, err)
	}
	q.ID = id
	return nil
}

func (t *tx) UpdateQuestion(ctx context.Context, q *records.Question) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE question SET type = ?, answer_count = ?, aggregation_data = ?
		WHERE id = ?`,
		string(q.Type), q.AnswerCount, q.AggregationData, q.ID)
	if err != nil {
		return errors.WrapResource("update", "question", idString(q.ID), err)
	}
	return requireRow(res, "question", q.ID)
}

func (t *tx) Commit() error {
	err := t.tx.Commit()
	if stderrors.Is(err, sql.ErrTxDone) {
		return records.ErrTxDone
	}
	return err
}

func (t *tx) Rollback() error {
	err := t.tx.Rollback()
	if stderrors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
