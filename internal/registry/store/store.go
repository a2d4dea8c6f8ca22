package store

import (
	"context"
	"errors"

	"github.com/keelhaven/clientreg/internal/registry/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and a transaction entry point for multi-step work that
// must be atomic.
type Store interface {
	Clients() Clients
	Credentials() Credentials

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID fetches a client by its exact external identifier.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns one offset page ordered by id so repeated calls
	// walk the registry in a stable order.
	ListClients(ctx context.Context, skip, take int) ([]domain.Client, error)

	// CountClients returns the total number of registered clients.
	CountClients(ctx context.Context) (int64, error)

	// CreateClient inserts a new client. Returns ErrAlreadyExists when the
	// id is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClient overwrites every mutable column of an existing client.
	// Returns ErrNotFound when no row matches.
	UpdateClient(ctx context.Context, c domain.Client) error

	// DeleteClient removes any client matching id. Deleting an absent id is
	// not an error; credentials cascade.
	DeleteClient(ctx context.Context, id string) error
}

type Credentials interface {
	// AddCredential appends a secret hash for a client. Existing credentials
	// are left in place.
	AddCredential(ctx context.Context, cred domain.Credential) error

	// ListCredentials returns every credential for a client, oldest first.
	ListCredentials(ctx context.Context, clientID string) ([]domain.Credential, error)
}
