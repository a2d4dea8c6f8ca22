package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/keelhaven/clientreg/internal/registry/store"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

// NewStore opens a connection pool against dsn, e.g.
// "postgres://registry:secret@db:5432/clientreg?sslmode=disable".
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Clients() store.Clients         { return &clientsRepo{db: s.db} }
func (s *Store) Credentials() store.Credentials { return &credentialsRepo{db: s.db} }

// dbtx is satisfied by both *sql.DB and *sql.Tx so the repos work inside and
// outside transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint translates unique violations (SQLSTATE 23505) into
// store.ErrAlreadyExists. The constraint is the backstop against concurrent
// creates racing past the existence check.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return store.ErrAlreadyExists
	}
	return err
}

// textArray wraps values for a TEXT[] column, mapping nil to the empty array
// so NOT NULL columns stay satisfied.
func textArray(values []string) any {
	if values == nil {
		values = []string{}
	}
	return pq.Array(values)
}

// compact maps the empty array back to nil so both drivers hand the same
// shape to callers.
func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
