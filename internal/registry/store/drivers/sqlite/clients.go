package sqlite

import (
	"context"
	"time"

	"github.com/keelhaven/clientreg/internal/registry/domain"
	"github.com/keelhaven/clientreg/internal/registry/store"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, name, cors_origins, redirect_uris, post_logout_redirect_uris, scopes, access_token_type, enabled, created_at, updated_at`

func scanClient(row interface{ Scan(dest ...any) error }) (domain.Client, error) {
	var (
		c                      domain.Client
		corsOrigins            string
		redirectURIs           string
		postLogoutRedirectURIs string
		scopes                 string
		tokenType              int
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&corsOrigins,
		&redirectURIs,
		&postLogoutRedirectURIs,
		&scopes,
		&tokenType,
		&c.Enabled,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, err
	}

	c.AllowedCorsOrigins = splitSet(corsOrigins)
	c.RedirectURIs = splitList(redirectURIs)
	c.PostLogoutRedirectURIs = splitList(postLogoutRedirectURIs)
	c.AllowedScopes = splitSet(scopes)
	c.AccessTokenType = domain.AccessTokenType(tokenType)
	return c, nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)

	c, err := scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListClients(ctx context.Context, skip, take int) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY id LIMIT ? OFFSET ?`, take, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0, take)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	return count, err
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		joinList(c.AllowedCorsOrigins),
		joinList(c.RedirectURIs),
		joinList(c.PostLogoutRedirectURIs),
		joinList(c.AllowedScopes),
		int(c.AccessTokenType),
		c.Enabled,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients
		 SET name = ?, cors_origins = ?, redirect_uris = ?, post_logout_redirect_uris = ?,
		     scopes = ?, access_token_type = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name,
		joinList(c.AllowedCorsOrigins),
		joinList(c.RedirectURIs),
		joinList(c.PostLogoutRedirectURIs),
		joinList(c.AllowedScopes),
		int(c.AccessTokenType),
		c.Enabled,
		time.Now().UTC(),
		c.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id string) error {
	// Predicate delete: removing an absent id is not an error, and the FK
	// cascades to client_credentials.
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	return err
}
