// Package sqlite is the SQLite-backed records.Store.
//
// The schema is managed with embedded golang-migrate migrations and applied
// on Open. Foreign keys are enabled on every connection so that deleting a
// template deletes its questions.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/records"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a records.Store on top of a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements records.Store
var _ records.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = constants.DefaultDBPath
	}

	memory := path == MemoryPath
	if !memory {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return nil, &errors.ConfigError{Component: "database", Message: "cannot create directory " + dir, Err: err}
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// db tuning options
	if memory {
		// every connection to :memory: is a separate database, so keep
		// exactly one open for the lifetime of the store
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(constants.MaxOpenConns)
		db.SetMaxIdleConns(constants.MaxIdleConns)
		db.SetConnMaxIdleTime(constants.ConnMaxIdleTime)
		db.SetConnMaxLifetime(constants.ConnMaxLifetime)
	}

	if err := migrateDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug().Str("path", path).Msg("Database ready")

	return &Store{db: db, path: path}, nil
}

// dsn builds the connection string. Pragmas given in the DSN apply to every
// pooled connection.
func dsn(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", "5000")
	if path == MemoryPath {
		return "file::memory:?" + params.Encode()
	}
	return "file:" + path + "?" + params.Encode()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin starts a transaction.
func (s *Store) Begin(ctx context.Context) (records.Tx, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &tx{tx: sqlTx}, nil
}

// Templates lists all templates with their questions, newest first.
func (s *Store) Templates(ctx context.Context) ([]records.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, author, external_id, api_url, last_sync
		FROM template
		ORDER BY id DESC`)
	if err != nil {
		return nil, errors.WrapResource("list", "template", "", err)
	}
	defer rows.Close()

	templates := []records.Template{}
	index := map[int64]int{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, errors.WrapResource("list", "template", "", err)
		}
		index[t.ID] = len(templates)
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("list", "template", "", err)
	}

	questions, err := queryQuestions(ctx, s.db, `
		SELECT id, template_id, text, type, answer_count, aggregation_data
		FROM question
		ORDER BY template_id, id`)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		if i, ok := index[q.TemplateID]; ok {
			templates[i].Questions = append(templates[i].Questions, q)
		}
	}

	return templates, nil
}

// Template returns one template with its questions.
func (s *Store) Template(ctx context.Context, id int64) (*records.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, author, external_id, api_url, last_sync
		FROM template
		WHERE id = ?`, id)

	t, err := scanTemplate(row)
	if err != nil {
		return nil, notFoundOr(err, "find", "template", id)
	}

	t.Questions, err = listQuestions(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Questions lists the questions of a template.
func (s *Store) Questions(ctx context.Context, templateID int64) ([]records.Question, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM template WHERE id = ?`, templateID).Scan(&exists)
	if err != nil {
		return nil, notFoundOr(err, "find", "template", templateID)
	}
	return listQuestions(ctx, s.db, templateID)
}

// DeleteTemplate removes a template; its questions go with it.
func (s *Store) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM template WHERE id = ?`, id)
	if err != nil {
		return errors.WrapResource("delete", "template", idString(id), err)
	}
	return requireRow(res, "template", id)
}
