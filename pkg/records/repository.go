package records

import (
	"context"
	"errors"
)

// ErrTxDone is returned by Tx methods called after Commit or Rollback.
var ErrTxDone = errors.New("transaction has already been committed or rolled back")

// Reader gives read access to committed records.
type Reader interface {
	// Templates lists all templates with their questions loaded.
	Templates(ctx context.Context) ([]Template, error)

	// Template returns one template with its questions.
	// A missing template is a NotFoundError.
	Template(ctx context.Context, id int64) (*Template, error)

	// Questions lists the questions of a template.
	Questions(ctx context.Context, templateID int64) ([]Question, error)
}

// Store is a persistent record store.
type Store interface {
	Reader

	// Begin starts a transaction. The caller owns its boundary.
	Begin(ctx context.Context) (Tx, error)

	// DeleteTemplate removes a template and its questions.
	DeleteTemplate(ctx context.Context, id int64) error
}

// Tx is a unit of work against a Store.
type Tx interface {
	// FindTemplate looks a template up by key, without questions.
	// A missing template is a NotFoundError.
	FindTemplate(ctx context.Context, key Key) (*Template, error)

	// CreateTemplate inserts t and sets t.ID.
	// A duplicate key is an AlreadyExistsError.
	CreateTemplate(ctx context.Context, t *Template) error

	// UpdateTemplate writes name, author and last sync of t.
	UpdateTemplate(ctx context.Context, t *Template) error

	// Questions lists the questions of a template as seen by this transaction.
	Questions(ctx context.Context, templateID int64) ([]Question, error)

	// CreateQuestion inserts q and sets q.ID.
	CreateQuestion(ctx context.Context, q *Question) error

	// UpdateQuestion writes type, answer count and aggregation of q.
	UpdateQuestion(ctx context.Context, q *Question) error

	Commit() error

	// Rollback discards the transaction. After Commit it is a no-op.
	Rollback() error
}
